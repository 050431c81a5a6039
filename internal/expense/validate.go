package expense

import (
	"strconv"
	"strings"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// FilterSubmittable drops rows with no content at all. The predicate is
// wider than ExpenseLine.IsBlank: a row holding only a date or only a
// carrier is kept so validation can point at what is missing. Idempotent.
func FilterSubmittable(lines []entity.ExpenseLine) []entity.ExpenseLine {
	out := make([]entity.ExpenseLine, 0, len(lines))
	for _, l := range lines {
		if l.HasContent() {
			out = append(out, l)
		}
	}
	return out
}

// ValidateForSubmission filters the draft rows and validates what remains,
// returning the cleaned lines ready to persist. Amounts come back with
// thousands separators stripped. The first failing check wins and is
// reported as a ValidationError with the message the form shows.
func ValidateForSubmission(lines []entity.ExpenseLine) ([]entity.ExpenseLine, error) {
	toSubmit := FilterSubmittable(lines)
	if len(toSubmit) == 0 {
		return nil, validationErr(msgNothingToSubmit)
	}

	for i := range toSubmit {
		if err := validateLine(&toSubmit[i]); err != nil {
			return nil, err
		}
	}
	return toSubmit, nil
}

func validateLine(l *entity.ExpenseLine) error {
	if strings.TrimSpace(l.From) == "" {
		return validationErr(msgFromRequired)
	}
	if strings.TrimSpace(l.To) == "" {
		return validationErr(msgToRequired)
	}

	amount := ParseAmount(strings.TrimSpace(l.Amount))
	if amount == "" {
		return validationErr(msgAmountInvalid)
	}
	if n, err := strconv.ParseInt(amount, 10, 64); err != nil || n < 0 {
		return validationErr(msgAmountInvalid)
	}
	l.Amount = amount

	switch l.Kind {
	case entity.KindRegular:
		if strings.TrimSpace(l.PeriodStart) == "" || strings.TrimSpace(l.PeriodEnd) == "" {
			return validationErr(msgPeriodNeeded)
		}
	default:
		if strings.TrimSpace(l.TravelDate) == "" {
			return validationErr(msgTravelDateNeeded)
		}
	}

	if strings.TrimSpace(l.Carrier) == "" {
		return validationErr(msgCarrierRequired)
	}
	return nil
}
