package jobrole

type CreateJobRoleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateJobRoleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type JobRoleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
