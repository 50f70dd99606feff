package model

type FollowUserRequest struct {
	UserID string `path:"userId"`
}

type FollowUserResponse struct{}

type UnfollowUserRequest struct {
	UserID string `path:"userId"`
}

type UnfollowUserResponse struct{}

type CheckFollowingRequest struct {
	UserID string `path:"userId"`
}

type CheckFollowingResponse struct {
	Following bool `json:"following"`
	Mutual    bool `json:"mutual"`
}

type GetFollowersRequest struct {
	UserID string `path:"userId"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFollowersResponse struct {
	Users []User `json:"users"`
}

type GetFollowingRequest struct {
	UserID string `path:"userId"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetFollowingResponse struct {
	Users []User `json:"users"`
}
