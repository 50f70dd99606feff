package model

type CreateCommunityRequest struct {
	DisplayName  string `json:"display_name"`
	Handle       string `json:"handle"`
	Introduction string `json:"introduction"`
}

type CreateCommunityResponse struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
}

type GetCommunityRequest struct {
	Handle string `path:"handle"`
}

type GetCommunityResponse Community

type GetCommunitiesRequest struct {
	Q          string `json:"q"`
	ByTrending bool   `json:"by_trending"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type GetCommunitiesResponse struct {
	Communities []Community `json:"communities"`
}

type JoinCommunityRequest struct {
	Handle string `path:"handle"`
}

type JoinCommunityResponse struct{}

type LeaveCommunityRequest struct {
	Handle string `path:"handle"`
}

type LeaveCommunityResponse struct{}

type GetCommunityStatsRequest struct {
	Handle string `path:"handle"`
}

type GetCommunityStatsResponse struct {
	Stats []CommunityStats `json:"stats"`
}
