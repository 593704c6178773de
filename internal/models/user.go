package models

// User identifies the authenticated shopper. The core treats it as opaque
// beyond identity; it exists while a session is active and is discarded on
// logout.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}
