package bot

type CreateBotTypeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Cost         float64 `json:"cost" binding:"required,gt=0"`
	DailyProfit  float64 `json:"daily_profit" binding:"required,gt=0"`
	DurationDays int     `json:"duration_days" binding:"required,gt=0"`
}

type UpdateBotTypeRequest struct {
	Name         *string  `json:"name"`
	Cost         *float64 `json:"cost"`
	DailyProfit  *float64 `json:"daily_profit"`
	DurationDays *int     `json:"duration_days"`
	Enabled      *bool    `json:"enabled"`
}
