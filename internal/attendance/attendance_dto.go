package attendance

import (
	"unicube-hr/internal/leave"
)

type SetStatusRequest struct {
	UserID string `json:"userId" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Status string `json:"status" binding:"required,oneof=present absent on_leave"`
}

type EntryResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// UserSummary is the directory entry exposed alongside attendance data.
// No credential material crosses this boundary.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// UserContext joins one user with their attendance entries and leave
// requests so callers can resolve per-date display status themselves.
type UserContext struct {
	User          UserSummary          `json:"user"`
	Attendance    []EntryResponse      `json:"attendance"`
	LeaveRequests []leave.LeaveRequest `json:"leaveRequests"`
}
