package bot

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParsePurchasePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantID  int64
		known   bool
		wantErr bool
	}{
		{name: "valid", payload: "purchase_42", wantID: 42, known: true},
		{name: "foreign payload", payload: "subscription_42", known: false},
		{name: "empty payload", payload: "", known: false},
		{name: "missing id", payload: "purchase_", known: true, wantErr: true},
		{name: "extra separator", payload: "purchase_1_2", known: true, wantErr: true},
		{name: "non numeric", payload: "purchase_abc", known: true, wantErr: true},
		// Any parseable integer is accepted. The store never mints ids
		// below 1, so these confirm the payer and skip the operator
		// notification when the lookup misses.
		{name: "negative id", payload: "purchase_-5", wantID: -5, known: true},
		{name: "zero id", payload: "purchase_0", wantID: 0, known: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, known, err := parsePurchasePayload(tt.payload)
			if known != tt.known {
				t.Fatalf("known = %v, want %v", known, tt.known)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && known && id != tt.wantID {
				t.Fatalf("id = %d, want %d", id, tt.wantID)
			}
		})
	}
}

func TestProperty_PurchasePayloadRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("payload built for any product id parses back to the same id", prop.ForAll(
		func(id int64) bool {
			parsed, known, err := parsePurchasePayload(buildPurchasePayload(id))
			return known && err == nil && parsed == id
		},
		gen.Int64Range(-(1 << 62), 1<<62),
	))

	properties.TestingRun(t)
}
