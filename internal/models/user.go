package models

// User is a staff account. Only the authentication endpoints touch it;
// submissions carry no ownership.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// AuthClaims is the decoded identity carried by a bearer token.
type AuthClaims struct {
	UserID   string
	Username string
}
