package agents

import (
	"fmt"
	"strings"

	"github.com/spboyer/vitta/internal/calc"
	"github.com/spboyer/vitta/internal/models"
)

// The three stage roles in pipeline order.
var (
	AdvisorRole = Role{
		Key:     models.StageAdvisor,
		Label:   "वित्तीय सलाहकार",
		Persona: "आप एक अनुभवी वित्तीय सलाहकार हैं जो भारतीय निवेशकों को सलाह देते हैं।",
		Context: "भारतीय बाजार और निवेश विकल्पों के बारे में सलाह दें।",
	}

	RiskAnalystRole = Role{
		Key:     models.StageRiskAnalyst,
		Label:   "जोखिम विश्लेषक",
		Persona: "आप एक जोखिम विश्लेषण विशेषज्ञ हैं जो वित्तीय सुरक्षा पर ध्यान देते हैं।",
		Context: "वित्तीय सुरक्षा और जोखिम प्रबंधन पर ध्यान दें।",
	}

	PlannerRole = Role{
		Key:     models.StagePlanner,
		Label:   "वित्तीय योजनाकर्त्ता",
		Persona: "आप एक व्यापक वित्तीय योजनाकार हैं जो व्यावहारिक योजनाएं बनाते हैं।",
		Context: "एक संरचित और कार्यान्वयन योग्य योजना बनाएं।",
	}
)

// AdvisorTask asks for a first opinion on the goal and the required SIP.
func AdvisorTask(in models.GoalInput, sip models.SipResult) string {
	var b strings.Builder
	b.WriteString("उपयोगकर्ता की जानकारी:\n")
	fmt.Fprintf(&b, "- मासिक आय: %s\n", calc.FormatINR(in.MonthlyIncome))
	fmt.Fprintf(&b, "- लक्ष्य राशि: %s\n", calc.FormatINR(in.TargetAmount))
	fmt.Fprintf(&b, "- समय सीमा: %d वर्ष\n", in.Years)
	fmt.Fprintf(&b, "- जोखिम प्रोफाइल: %s\n", in.RiskProfile)
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		fmt.Fprintf(&b, "- अतिरिक्त टिप्पणी: %s\n", notes)
	}
	b.WriteString("\nगणना परिणाम:\n")
	fmt.Fprintf(&b, "- आवश्यक मासिक SIP: %s\n", calc.FormatINR(sip.MonthlyContribution))
	fmt.Fprintf(&b, "- कुल निवेश: %s\n", calc.FormatINR(sip.TotalContributed))
	fmt.Fprintf(&b, "- अपेक्षित रिटर्न: %s\n", calc.FormatINR(sip.ProjectedGain))
	fmt.Fprintf(&b, "- लक्ष्य मूल्य: %s\n", calc.FormatINR(sip.TargetValue))
	b.WriteString(`
कृपया उपयोगकर्ता को प्रारंभिक वित्तीय सलाह दें। निम्नलिखित बातों का उल्लेख करें:
1. क्या यह लक्ष्य उनकी आय के अनुसार संभव है?
2. किस प्रकार के निवेश की सिफारिश करेंगे?
3. बचत और खर्च का अनुपात क्या होना चाहिए?

संक्षिप्त और स्पष्ट उत्तर दें।`)
	return b.String()
}

// RiskTask asks for a safety review of the advisor's suggestion.
func RiskTask(in models.GoalInput, sip models.SipResult, advisorText string) string {
	var b strings.Builder
	b.WriteString("सलाहकार का सुझाव:\n")
	b.WriteString(advisorText)
	b.WriteString("\n\nवित्तीय विश्लेषण:\n")
	fmt.Fprintf(&b, "- आय का %.1f%% SIP में जाएगा\n", SipIncomeRatio(in, sip))
	fmt.Fprintf(&b, "- जोखिम स्तर: %s\n", in.RiskProfile)
	fmt.Fprintf(&b, "- निवेश अवधि: %d वर्ष\n", in.Years)
	fmt.Fprintf(&b, "- मासिक आय: %s\n", calc.FormatINR(in.MonthlyIncome))
	fmt.Fprintf(&b, "- आवश्यक SIP: %s\n", calc.FormatINR(sip.MonthlyContribution))
	b.WriteString(`
कृपया जोखिम विश्लेषण करें:
1. क्या यह योजना सुरक्षित है?
2. क्या कोई जोखिम हैं?
3. सुरक्षित विकल्प क्या हैं?
4. आपातकालीन निधि की सिफारिश (आय का 6-12 महीने)

संक्षिप्त और स्पष्ट उत्तर दें।`)
	return b.String()
}

// PlannerTask asks for the final plan built on both earlier answers.
func PlannerTask(in models.GoalInput, sip models.SipResult, advisorText, riskText string) string {
	monthlySIP := calc.FormatINR(sip.MonthlyContribution)

	var b strings.Builder
	b.WriteString("सलाहकार की राय:\n")
	b.WriteString(advisorText)
	b.WriteString("\n\nजोखिम विश्लेषक की राय:\n")
	b.WriteString(riskText)
	b.WriteString("\n\nउपयोगकर्ता डेटा:\n")
	fmt.Fprintf(&b, "- मासिक आय: %s\n", calc.FormatINR(in.MonthlyIncome))
	fmt.Fprintf(&b, "- लक्ष्य: %s (%d वर्ष में)\n", calc.FormatINR(in.TargetAmount), in.Years)
	fmt.Fprintf(&b, "- आवश्यक SIP: %s\n", monthlySIP)
	fmt.Fprintf(&b, "- जोखिम स्तर: %s\n", in.RiskProfile)
	fmt.Fprintf(&b, `
कृपया एक विस्तृत वित्तीय योजना बनाएं जिसमें शामिल हो:

1. मासिक बजट विभाजन (आय का प्रतिशत):
   - आवश्यक खर्च (किराया, भोजन, बिल): __%% (₹__)
   - बचत/निवेश (SIP): __%% (₹__)
   - आपातकालीन निधि: __%% (₹__)
   - विवेकाधीन खर्च: __%% (₹__)

2. निवेश रणनीति:
   - SIP राशि: %s
   - निवेश प्रकार (इक्विटी/डेट/हाइब्रिड)
   - अन्य निवेश साधन

3. कार्य योजना:
   - पहले 3 महीने में क्या करें
   - 6 महीने की योजना
   - 12 महीने की योजना

4. जोखिम चेतावनी

संक्षिप्त, स्पष्ट और व्यावहारिक योजना बनाएं।`, monthlySIP)
	return b.String()
}

// SipIncomeRatio is the required SIP as a percentage of monthly income, or 0
// when income is not positive.
func SipIncomeRatio(in models.GoalInput, sip models.SipResult) float64 {
	return calc.IncomeSharePercent(sip.MonthlyContribution, in.MonthlyIncome)
}
