package model

// User is the account profile returned by the marketplace API on login
// and signup.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the request body for POST /account/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the request body for POST /account/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
