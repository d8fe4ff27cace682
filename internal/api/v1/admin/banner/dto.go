package banner

type CreateBannerRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}
