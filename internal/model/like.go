package model

type LikeStoryRequest struct {
	StoryID string `path:"id"`
}

type LikeStoryResponse struct{}

type UnlikeStoryRequest struct {
	StoryID string `path:"id"`
}

type UnlikeStoryResponse struct{}

type CheckLikedRequest struct {
	StoryID string `path:"id"`
}

type CheckLikedResponse struct {
	Liked bool `json:"liked"`
}

type GetLikedStoriesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetLikedStoriesResponse struct {
	Stories []Story `json:"stories"`
}

type BookmarkStoryRequest struct {
	StoryID string `path:"id"`
}

type BookmarkStoryResponse struct{}

type UnbookmarkStoryRequest struct {
	StoryID string `path:"id"`
}

type UnbookmarkStoryResponse struct{}

type GetBookmarksRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetBookmarksResponse struct {
	Stories []Story `json:"stories"`
}
