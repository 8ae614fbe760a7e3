package session

import (
	"sync"
	"testing"

	"storebot/internal/domain"
)

func TestStoreDefaultsToIdle(t *testing.T) {
	s := NewStore()

	if got := s.StateOf(42); got != StateIdle {
		t.Fatalf("fresh session state = %q, want %q", got, StateIdle)
	}
	if s.InProgress(42) {
		t.Fatal("fresh session reported an active conversation")
	}
	if s.IsAdmin(42) {
		t.Fatal("fresh session reported admin rights")
	}
}

func TestMutateAdvancesConversation(t *testing.T) {
	s := NewStore()

	s.Mutate(1, func(sess *Session) {
		sess.State = StateAwaitName
	})
	if !s.InProgress(1) {
		t.Fatal("conversation not reported in progress after state change")
	}
	if s.InProgress(2) {
		t.Fatal("state leaked into another chat")
	}

	s.Mutate(1, func(sess *Session) {
		sess.Draft.Name = "runner"
		sess.State = StateAwaitPrice
	})
	s.View(1, func(sess Snapshot) {
		if sess.State != StateAwaitPrice {
			t.Errorf("state = %q, want %q", sess.State, StateAwaitPrice)
		}
		if sess.Draft.Name != "runner" {
			t.Errorf("draft name = %q, want %q", sess.Draft.Name, "runner")
		}
	})
}

func TestResetKeepsAdminGrant(t *testing.T) {
	s := NewStore()

	s.Mutate(7, func(sess *Session) {
		sess.Admin = true
		sess.State = StateAwaitDeleteID
		sess.Draft = domain.ProductDraft{Name: "boot", Price: 10}
	})

	s.Reset(7)

	s.View(7, func(sess Snapshot) {
		if !sess.Admin {
			t.Error("reset dropped the admin grant")
		}
		if sess.State != StateIdle {
			t.Errorf("state after reset = %q, want %q", sess.State, StateIdle)
		}
		if sess.Draft != (domain.ProductDraft{}) {
			t.Errorf("draft after reset = %+v, want empty", sess.Draft)
		}
	})
}

func TestViewHandsOutDetachedSnapshot(t *testing.T) {
	s := NewStore()

	s.Mutate(3, func(sess *Session) {
		sess.State = StateAwaitPrice
		sess.Draft.Name = "runner"
	})

	s.View(3, func(sess Snapshot) {
		sess.State = StateIdle
		sess.Draft.Name = "changed"
	})

	if got := s.StateOf(3); got != StateAwaitPrice {
		t.Fatalf("state = %q, want %q; snapshot writes leaked into the store", got, StateAwaitPrice)
	}
}

func TestConcurrentMutate(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			s.Mutate(chatID%4, func(sess *Session) {
				sess.Draft.Price++
			})
		}(int64(i))
	}
	wg.Wait()

	total := int64(0)
	for chatID := int64(0); chatID < 4; chatID++ {
		s.View(chatID, func(sess Snapshot) {
			total += sess.Draft.Price
		})
	}
	if total != 100 {
		t.Fatalf("total increments = %d, want 100", total)
	}
}
