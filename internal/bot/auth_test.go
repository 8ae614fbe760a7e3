package bot

import (
	"testing"

	"storebot/internal/bot/session"
)

func TestSecretMatches(t *testing.T) {
	if !secretMatches("opensesame", "opensesame") {
		t.Error("exact secret rejected")
	}
	if secretMatches("opensesame", "OPENSESAME") {
		t.Error("case-folded secret accepted")
	}
	if secretMatches("opensesame", "") {
		t.Error("empty candidate accepted")
	}
	if secretMatches("", "") {
		t.Error("empty configured secret must never match")
	}
}

func TestSessionAuthorizer(t *testing.T) {
	sessions := session.NewStore()
	auth := &sessionAuthorizer{sessions: sessions}

	if auth.IsAdmin(5) {
		t.Fatal("fresh chat reported as admin")
	}

	sessions.Mutate(5, func(sess *session.Session) { sess.Admin = true })

	if !auth.IsAdmin(5) {
		t.Fatal("granted chat not reported as admin")
	}
	if auth.IsAdmin(6) {
		t.Fatal("grant leaked to another chat")
	}
}
