package entities

// AuthUser is the minimal user identity returned by login
type AuthUser struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Session holds the access token and user identity for the signed-in
// doctor. Token presence implies authenticated for routing purposes; no
// expiry or refresh logic exists client-side.
type Session struct {
	AccessToken string   `json:"access_token"`
	User        AuthUser `json:"user"`
}

// Authenticated reports whether the session carries a token
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}
