package models

import "time"

// User is a chat identity that has talked to the bot at least once.
// DisplayName and Handle are captured on first contact and never updated.
type User struct {
	Identity     int64     `json:"identity"`
	DisplayName  string    `json:"display_name"`
	Handle       string    `json:"handle"`
	RegisteredAt time.Time `json:"registered_at"`
}
