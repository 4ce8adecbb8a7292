package entity

import "time"

// User is a chat user (domain layer, no serialization concerns).
// Users are created lazily the first time an identifier shows up in a
// chat request; the username is unique.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
