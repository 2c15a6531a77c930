package dto

type CreatePostRequest struct {
	Body string `json:"body" binding:"required,max=140"`
}
