package blog

type PostRequest struct {
	Title     string `form:"title" json:"title"`
	Category  string `form:"category" json:"category"`
	Summary   string `form:"summary" json:"summary"`
	Content   string `form:"content" json:"content"`
	ImageIcon string `form:"imageIcon" json:"image_icon"`
}
