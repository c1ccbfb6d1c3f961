// Package reporting renders saved transcripts for people: the full plan as
// Markdown or HTML and a short plain-text summary.
package reporting

import (
	"fmt"
	"strings"

	"github.com/spboyer/vitta/internal/calc"
	"github.com/spboyer/vitta/internal/models"
)

// Disclaimer closes every rendered plan.
const Disclaimer = "⚠️ **अस्वीकरण:** यह एक AI-जनित योजना है। कृपया किसी प्रमाणित वित्तीय सलाहकार से परामर्श करें।"

// PlanMarkdown renders the complete plan: goal details, calculations and the
// three agent answers.
func PlanMarkdown(t *models.Transcript) string {
	in := t.UserInput
	sip := t.Calculations

	var b strings.Builder
	b.WriteString("# 📋 आपकी पूर्ण वित्तीय योजना\n\n")
	if t.DateReadable != "" {
		fmt.Fprintf(&b, "_%s_\n\n", t.DateReadable)
	}

	b.WriteString("### 🎯 लक्ष्य विवरण\n")
	fmt.Fprintf(&b, "- **मासिक आय:** %s\n", calc.FormatINR(in.MonthlyIncome))
	fmt.Fprintf(&b, "- **लक्ष्य राशि:** %s\n", calc.FormatINR(in.TargetAmount))
	fmt.Fprintf(&b, "- **समय सीमा:** %d वर्ष\n", in.Years)
	fmt.Fprintf(&b, "- **जोखिम प्रोफाइल:** %s\n", in.RiskProfile)
	if in.AnnualReturnPercent > 0 {
		fmt.Fprintf(&b, "- **अपेक्षित वार्षिक रिटर्न:** %g%%\n", in.AnnualReturnPercent)
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		fmt.Fprintf(&b, "- **नोट्स:** %s\n", notes)
	}

	b.WriteString("\n### 📊 गणना परिणाम\n")
	fmt.Fprintf(&b, "- **आवश्यक मासिक SIP:** %s\n", calc.FormatINR(sip.MonthlyContribution))
	fmt.Fprintf(&b, "- **कुल निवेश:** %s\n", calc.FormatINR(sip.TotalContributed))
	fmt.Fprintf(&b, "- **अपेक्षित लाभ:** %s\n", calc.FormatINR(sip.ProjectedGain))
	fmt.Fprintf(&b, "- **आय का %%:** %.1f%%\n", calc.IncomeSharePercent(sip.MonthlyContribution, in.MonthlyIncome))

	b.WriteString("\n### 💼 एजेंट सुझाव\n\n")
	section(&b, "सलाहकार की राय", t.AgentOutputs.Advisor.Output)
	section(&b, "जोखिम विश्लेषण", t.AgentOutputs.RiskAnalyst.Output)
	section(&b, "अंतिम योजना", t.AgentOutputs.Planner.Output)

	b.WriteString("---\n")
	b.WriteString(Disclaimer)
	b.WriteString("\n")
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "**%s:**\n\n%s\n\n", title, strings.TrimSpace(body))
}

// Summary renders a plain-text overview of a transcript with each agent's
// one-line summary.
func Summary(t *models.Transcript) string {
	in := t.UserInput
	sip := t.Calculations

	date := t.DateReadable
	if date == "" {
		date = "Unknown date"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Date: %s\n\n", date)

	b.WriteString("💰 Financial Goal:\n")
	fmt.Fprintf(&b, "- Monthly Income: %s\n", calc.FormatINR(in.MonthlyIncome))
	fmt.Fprintf(&b, "- Target Amount: %s\n", calc.FormatINR(in.TargetAmount))
	fmt.Fprintf(&b, "- Time Horizon: %d years\n", in.Years)
	fmt.Fprintf(&b, "- Risk Profile: %s\n", in.RiskProfile)

	b.WriteString("\n📊 Calculations:\n")
	fmt.Fprintf(&b, "- Required Monthly SIP: %s\n", calc.FormatINR(sip.MonthlyContribution))
	fmt.Fprintf(&b, "- Total Investment: %s\n", calc.FormatINR(sip.TotalContributed))
	fmt.Fprintf(&b, "- Expected Returns: %s\n", calc.FormatINR(sip.ProjectedGain))

	b.WriteString("\n🤖 Agent Summaries:\n")
	for _, out := range []models.AgentOutput{t.AgentOutputs.Advisor, t.AgentOutputs.RiskAnalyst, t.AgentOutputs.Planner} {
		summary := out.Summary
		if summary == "" {
			summary = "No summary"
		}
		fmt.Fprintf(&b, "\n%s:\n%s\n", out.Role, summary)
	}
	return b.String()
}
