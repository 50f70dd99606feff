package model

type CreateRepostRequest struct {
	// StoryID accepts either the story id or its slug.
	StoryID string `json:"story_id"`
	Comment string `json:"comment"`
}

type CreateRepostResponse struct {
	RepostStoryID string `json:"repost_story_id"`
}

type DeleteRepostRequest struct {
	StoryID string `path:"storyId"`
}

type DeleteRepostResponse struct{}
