package goal

type CreateGoalRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Title       string `json:"title" binding:"required,min=5,max=100"`
	Description string `json:"description" binding:"required,min=10,max=500"`
	Deadline    string `json:"deadline" binding:"required"`
}

type SetGoalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress completed"`
}

type GoalResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}
