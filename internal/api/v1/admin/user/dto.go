package user

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}
