package model

type CreateCommentRequest struct {
	StoryID  string `json:"story_id"`
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
}

type CreateCommentResponse struct {
	ID string `json:"id"`
}

type GetCommentsRequest struct {
	StoryID string `path:"storyId"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type DeleteCommentRequest struct {
	ID string `path:"id"`
}

type DeleteCommentResponse struct{}
