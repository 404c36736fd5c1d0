package domain

// AccessToken is what the login endpoint returns: the signed token string
// and its type tag.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // always "bearer"
}
