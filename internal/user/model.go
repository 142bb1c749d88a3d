package user

import "time"

type User struct {
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	IsAdmin            bool      `json:"isAdmin"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedAtHumanised string    `json:"createdAtHumanised,omitempty"`
}
