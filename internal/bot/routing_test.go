package bot

import (
	"testing"

	"storebot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// onTextHandler wires the registry and text routes exactly like
// TelegramRunOptions does and returns the installed OnText handler.
func onTextHandler(app *App) (tele.HandlerFunc, *wizard) {
	reg := app.buildRegistry()
	auth := &sessionAuthorizer{sessions: app.sessions}
	wiz := &wizard{app: app}
	for _, route := range router.TextRoutes(wiz, reg, router.TextOptions{Auth: auth}) {
		if route.Endpoint == tele.OnText {
			return route.Handler, wiz
		}
	}
	return nil, wiz
}

func TestBareTextDoesNotDispatchCommands(t *testing.T) {
	app := newTestApp(newMockProductRepo())
	handler, wiz := onTextHandler(app)
	if handler == nil {
		t.Fatal("no OnText route installed")
	}
	const chatID = int64(777)

	for _, text := range []string{"add", "remove", "admin", "start", "catalog"} {
		c := newFakeContext(chatID, text)
		if err := handler(c); err != nil {
			t.Fatalf("handler(%q): %v", text, err)
		}
		if wiz.InProgress(chatID) {
			t.Fatalf("text %q started a conversation", text)
		}
		if len(c.sent) != 0 {
			t.Fatalf("text %q got a reply: %q", text, c.lastSent())
		}
	}
	if app.sessions.IsAdmin(chatID) {
		t.Fatal("plain text granted admin")
	}
}

func TestTextCommandDispatchKeepsAdminGate(t *testing.T) {
	app := newTestApp(newMockProductRepo())
	handler, wiz := onTextHandler(app)
	const chatID = int64(778)

	// Admin-only command as raw text from a chat without the admin flag.
	denied := newFakeContext(chatID, "/add")
	if err := handler(denied); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if wiz.InProgress(chatID) {
		t.Fatal("non-admin chat entered the add-product wizard")
	}
	if len(denied.sent) != 0 {
		t.Fatalf("rejected command got a reply: %q", denied.lastSent())
	}

	// Same input once the flag is granted.
	if err := handler(newFakeContext(chatID, app.cfg.Shop.AdminSecret)); err != nil {
		t.Fatalf("secret: %v", err)
	}
	allowed := newFakeContext(chatID, "/add")
	if err := handler(allowed); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !wiz.InProgress(chatID) {
		t.Fatal("admin chat did not enter the add-product wizard")
	}
	if allowed.lastSent() != msgAskName {
		t.Fatalf("prompt = %q, want %q", allowed.lastSent(), msgAskName)
	}
}
