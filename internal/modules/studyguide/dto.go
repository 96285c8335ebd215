package studyguide

type GuideRequest struct {
	FirstName string `form:"first_name" json:"first_name" binding:"required"`
	Email     string `form:"email" json:"email" binding:"required,email"`
	Major     string `form:"major" json:"major" binding:"required"`
}
