package dto

type UpdateProfileRequest struct {
	Username string  `json:"username" binding:"omitempty,min=3,max=64"`
	AboutMe  *string `json:"about_me" binding:"omitempty,max=140"`
}
