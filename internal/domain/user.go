package domain

import "time"

// User is a chat participant registered with the bot. The Telegram chat ID
// doubles as the primary key since the bot works in private chats.
type User struct {
	ChatID       int64     `db:"chat_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	RegisteredAt time.Time `db:"registered_at"`
}

// Handle returns the best human-readable reference for the user.
func (u User) Handle() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}
