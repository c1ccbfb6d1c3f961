package calc

import (
	"math"
	"strconv"
	"strings"
)

// RupeeSymbol prefixes every formatted amount.
const RupeeSymbol = "₹"

// FormatINR formats amount with the Indian digit grouping: the last three
// integer digits form one group and the remaining digits are grouped in
// pairs, e.g. ₹12,34,567.89. A zero fractional part is omitted entirely.
// Non-finite amounts print as ₹NaN, ₹+Inf or ₹-Inf.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return RupeeSymbol + strconv.FormatFloat(amount, 'f', -1, 64)
	}
	if amount < 0 {
		return "-" + FormatINR(math.Abs(amount))
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	grouped := groupIndian(intPart)
	if fracPart == "00" {
		return RupeeSymbol + grouped
	}
	return RupeeSymbol + grouped + "." + fracPart
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, lastThree := digits[:len(digits)-3], digits[len(digits)-3:]

	var pairs []string
	for len(head) > 2 {
		pairs = append([]string{head[len(head)-2:]}, pairs...)
		head = head[:len(head)-2]
	}
	if head != "" {
		pairs = append([]string{head}, pairs...)
	}

	return strings.Join(pairs, ",") + "," + lastThree
}
