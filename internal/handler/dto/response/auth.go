package response

import "court-booking/internal/usecase/queries"

type AuthResponse struct {
	AccessToken string                      `json:"access_token"`
	TokenType   string                      `json:"token_type"`
	ExpiresIn   int64                       `json:"expires_in"`
	User        *queries.AuthorizedUserView `json:"user"`
}
