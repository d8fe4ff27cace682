package deposit

// RejectRequest requires an explicit reason; the reason is shown to the user.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}
