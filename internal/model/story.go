package model

type CreatePollPayload struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	ExpiresAt string   `json:"expires_at"`
}

type CreateStoryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`

	Poll *CreatePollPayload `json:"poll"`
}

type CreateStoryResponse struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

type GetStoryRequest struct {
	ID string `path:"id"`
}

type GetStoryResponse Story

type GetStoriesRequest struct {
	Category  string `json:"category"`
	Tag       string `json:"tag"`
	AuthorID  string `json:"author_id"`
	Following bool   `json:"following"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type GetStoriesResponse struct {
	Stories []Story `json:"stories"`
}

type UpdateStoryRequest struct {
	ID       string `path:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

type UpdateStoryResponse struct{}

type DeleteStoryRequest struct {
	ID string `path:"id"`
}

type DeleteStoryResponse struct{}

type GetTrendingTagsRequest struct {
	Limit int `json:"limit"`
}

type GetTrendingTagsResponse struct {
	Tags []Tag `json:"tags"`
}
