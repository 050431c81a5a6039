package entity

// Status constants for Submission
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Kind constants for ExpenseLine
const (
	KindOneTime      = "one_time"      // 単発
	KindBusinessTrip = "business_trip" // 出張
	KindRegular      = "regular"       // 定期
)

// RoleAdmin is the role claim value that unlocks the approval workflow.
const RoleAdmin = "admin"

// ValidStatus reports whether s is a known submission status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ValidKind reports whether k is a known expense line kind.
func ValidKind(k string) bool {
	switch k {
	case KindOneTime, KindBusinessTrip, KindRegular:
		return true
	}
	return false
}

// StatusLabel returns the Japanese display label for a submission status.
func StatusLabel(status string) string {
	switch status {
	case StatusApproved:
		return "承認"
	case StatusRejected:
		return "却下"
	default:
		return "申請中"
	}
}
