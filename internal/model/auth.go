package model

// AccessToken is the claim object carried by the bearer token. Every other
// component trusts this verdict without re-verifying.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type RefreshToken struct {
	Family  string `json:"family"`
	Counter uint64 `json:"counter"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r LoginResponse) SessionInfo() map[string]any {
	return map[string]any{"access_token": r.AccessToken}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenResponse) SessionInfo() map[string]any {
	return map[string]any{"access_token": r.AccessToken}
}
