package payment

type CreatePaymentMethodRequest struct {
	Name    string                 `json:"name" binding:"required"`
	Details map[string]interface{} `json:"details" binding:"required"`
	Enabled bool                   `json:"enabled"`
}

type UpdatePaymentMethodRequest struct {
	Name    string                 `json:"name"`
	Details map[string]interface{} `json:"details"`
	Enabled *bool                  `json:"enabled"`
}
