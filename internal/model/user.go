package model

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetUserResponse User

type UpdateMeRequest struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	CountryFrom string `json:"country_from"`
	CountryNow  string `json:"country_now"`
}

type UpdateMeResponse struct{}

type GetSuggestedUsersRequest struct {
	Limit int `json:"limit"`
}

type GetSuggestedUsersResponse struct {
	Users []User `json:"users"`
}
