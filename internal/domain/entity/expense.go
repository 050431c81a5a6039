package entity

// ExpenseLine represents one trip record within a submission.
// The date fields are kind-dependent: one_time and business_trip lines use
// TravelDate, regular (commuter pass) lines use PeriodStart and PeriodEnd.
type ExpenseLine struct {
	Kind        string `json:"kind"`
	From        string `json:"from"`
	To          string `json:"to"`
	Amount      string `json:"amount"`
	TravelDate  string `json:"travel_date,omitempty"`
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
	Carrier     string `json:"carrier,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// NewBlankLine returns the empty placeholder row shown in a fresh draft.
func NewBlankLine() ExpenseLine {
	return ExpenseLine{Kind: KindOneTime}
}

// IsBlank reports whether the line is an untouched placeholder: station
// names and amount all empty. Dates and carrier are deliberately ignored
// here; see HasContent for the submission-time filter.
func (l ExpenseLine) IsBlank() bool {
	return l.From == "" && l.To == "" && l.Amount == ""
}

// HasContent reports whether the line carries anything worth validating at
// submission time. Unlike IsBlank this also looks at the kind-specific date
// fields and the carrier, so a row holding only a carrier or only a date is
// kept and will fail validation with a pointed message instead of being
// silently dropped.
func (l ExpenseLine) HasContent() bool {
	if !l.IsBlank() {
		return true
	}
	if l.Kind == KindRegular {
		if l.PeriodStart != "" || l.PeriodEnd != "" {
			return true
		}
	} else if l.TravelDate != "" {
		return true
	}
	return l.Carrier != ""
}

// KindLabel returns the Japanese display label for the line kind.
func (l ExpenseLine) KindLabel() string {
	switch l.Kind {
	case KindRegular:
		return "定期"
	case KindBusinessTrip:
		return "出張"
	default:
		return "単発"
	}
}

// DateLabel renders the line's date field(s) for lists and notifications,
// substituting 未設定 for anything unset.
func (l ExpenseLine) DateLabel() string {
	if l.Kind == KindRegular {
		return orUnset(l.PeriodStart) + " ~ " + orUnset(l.PeriodEnd)
	}
	return orUnset(l.TravelDate)
}

func orUnset(s string) string {
	if s == "" {
		return "未設定"
	}
	return s
}
