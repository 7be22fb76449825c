package domain

// User is created lazily on the first booking made with an unknown email.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
