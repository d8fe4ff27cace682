package withdrawal

// ApproveRequest carries the admin's proof that funds were sent.
type ApproveRequest struct {
	ProofOfSendURL string `json:"proof_of_send_url" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}
