package session

// User is the account record visible to the rest of the application.
// Points is the EcoPoints reward balance; it is a property of the user
// record, not derived from pickups.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Points  int    `json:"points"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// record is what gets persisted under the session key. The password hash
// is stored on register but never checked anywhere; authentication is
// mocked end to end.
type record struct {
	User         User   `json:"user"`
	PasswordHash string `json:"password_hash,omitempty"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on register / login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
