package attendance

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusOnLeave = "on_leave"
)

// Entry is one user's attendance status for one calendar day. The engine
// keeps at most one entry per (user, date) pair.
type Entry struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusOnLeave:
		return true
	}
	return false
}
