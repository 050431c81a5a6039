package entity

import "time"

// Submission is one persisted batch of expense lines. The id, owner and
// creation time are immutable after creation; only the approval workflow
// touches the status and the two decision timestamps.
type Submission struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id"`
	Status     string        `json:"status"`
	Lines      []ExpenseLine `json:"lines"`
	ApprovedAt *time.Time    `json:"approved_at,omitempty"`
	RejectedAt *time.Time    `json:"rejected_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`

	// Applicant is populated on reads that join the owner's profile.
	Applicant *Profile `json:"applicant,omitempty"`
}

// TotalAmount sums the parseable line amounts in yen. Unparseable amounts
// count as zero, matching how the form displays its running total.
func (s *Submission) TotalAmount() int64 {
	var total int64
	for _, l := range s.Lines {
		total += amountValue(l.Amount)
	}
	return total
}

// ApplicantName returns the display name for lists, notifications and the
// export: profile name if set, else the account email, else 不明.
func (s *Submission) ApplicantName() string {
	if s.Applicant != nil {
		if s.Applicant.Name != "" {
			return s.Applicant.Name
		}
		if s.Applicant.Email != "" {
			return s.Applicant.Email
		}
	}
	return "不明"
}

func amountValue(amount string) int64 {
	var n int64
	seen := false
	for _, r := range amount {
		if r == ',' {
			continue
		}
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int64(r-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return n
}
