package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		unique  string
		payload string
	}{
		{name: "unique with payload", data: "\fbuy|3", unique: "buy", payload: "3"},
		{name: "unique only", data: "\fadmin_add", unique: "admin_add", payload: ""},
		{name: "no marker", data: "buy|3", unique: "buy", payload: "3"},
		{name: "empty", data: "", unique: "", payload: ""},
		{name: "payload with separator", data: "\fbuy|3|extra", unique: "buy", payload: "3|extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, payload := ParseCallbackData(&tele.Callback{Data: tt.data})
			if unique != tt.unique || payload != tt.payload {
				t.Fatalf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)",
					tt.data, unique, payload, tt.unique, tt.payload)
			}
		})
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	unique, payload := ParseCallbackData(nil)
	if unique != "" || payload != "" {
		t.Fatalf("nil callback = (%q, %q), want empty", unique, payload)
	}
}
