package domain

import "time"

// NotificationToken is a push-notification registration for one player.
// URL is the delivery endpoint the token is valid for.
type NotificationToken struct {
	UserID    string    `json:"user_id"`
	FID       int64     `json:"fid"`
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}
