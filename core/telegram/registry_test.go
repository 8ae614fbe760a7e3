package telegram

import (
	"testing"

	"storebot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func TestLookupCommandRequiresSlashPrefix(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/add", commands.Command{
		Handler:     func(c tele.Context) error { return nil },
		Description: "Add a product",
		AdminOnly:   true,
	})

	tests := []struct {
		name  string
		input string
		found bool
	}{
		{name: "slash command", input: "/add", found: true},
		{name: "bare word", input: "add", found: false},
		{name: "unregistered", input: "/drop", found: false},
		{name: "empty", input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, cmd, ok := reg.LookupCommand(tt.input)
			if ok != tt.found {
				t.Fatalf("LookupCommand(%q) found = %v, want %v", tt.input, ok, tt.found)
			}
			if ok && (key != "/add" || cmd.Handler == nil) {
				t.Fatalf("LookupCommand(%q) = %q, %+v", tt.input, key, cmd)
			}
		})
	}
}
