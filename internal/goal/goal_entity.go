package goal

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Goal struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}
