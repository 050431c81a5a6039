package expense

import (
	"strconv"
	"strings"
)

// ParseAmount strips thousands separators and returns the bare digit
// string. It does not validate; ValidateForSubmission does.
func ParseAmount(value string) string {
	return strings.ReplaceAll(value, ",", "")
}

// FormatAmount renders an amount with comma separators for display.
// Anything that does not parse as a non-negative integer renders as "".
func FormatAmount(value string) string {
	if value == "" {
		return ""
	}
	n, err := strconv.ParseInt(ParseAmount(value), 10, 64)
	if err != nil || n < 0 {
		return ""
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
