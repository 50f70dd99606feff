package model

type VotePollRequest struct {
	PollOptionID string `json:"poll_option_id"`
}

type VotePollResponse struct{}

type GetPollRequest struct {
	StoryID string `path:"storyId"`
}

type GetPollResponse Poll
