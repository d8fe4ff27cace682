package bot

type PurchaseRequest struct {
	BotTypeID uint `json:"bot_type_id" binding:"required"`
}
