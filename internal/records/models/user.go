package models

import id "nhplus/pkg/domain"

// User is an account allowed to log in. Only the bcrypt hash is stored.
type User struct {
	ID           id.UserID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
}

// UserCreation takes an already hashed password; hashing happens in the
// service so stores never see plaintext.
type UserCreation struct {
	Username     string
	PasswordHash string
}

func NewUser(uid id.UserID, c UserCreation) *User {
	return &User{ID: uid, Username: c.Username, PasswordHash: c.PasswordHash}
}
