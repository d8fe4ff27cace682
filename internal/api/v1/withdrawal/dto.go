package withdrawal

// SubmitRequest defines the payload for a withdrawal request. Funds are held
// immediately on submission.
type SubmitRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Address string  `json:"address" binding:"required"`
}
