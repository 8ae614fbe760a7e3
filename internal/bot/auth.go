package bot

import (
	"crypto/subtle"

	"storebot/internal/bot/session"
)

// sessionAuthorizer backs admin checks with the in-memory session store.
// A chat earns the flag by sending the shared admin secret; the grant is
// sticky until the process restarts.
type sessionAuthorizer struct {
	sessions *session.Store
}

func (a *sessionAuthorizer) IsAdmin(chatID int64) bool {
	return a.sessions.IsAdmin(chatID)
}

// secretMatches compares the candidate against the configured secret in
// constant time.
func secretMatches(secret, candidate string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(candidate)) == 1
}
