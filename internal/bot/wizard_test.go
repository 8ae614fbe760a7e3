package bot

import (
	"context"
	"strings"
	"testing"

	coreconfig "storebot/core/config"
	"storebot/internal/bot/session"
	"storebot/internal/domain"
	"storebot/internal/repository"
	"storebot/internal/service"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the slice of tele.Context the handlers touch.
// Anything else panics through the embedded nil interface, which is the
// point: a test reaching an unexpected method should fail loudly.
type fakeContext struct {
	tele.Context

	chatID  int64
	text    string
	message *tele.Message
	kv      map[string]interface{}
	sent    []string
}

func newFakeContext(chatID int64, text string) *fakeContext {
	return &fakeContext{
		chatID:  chatID,
		text:    text,
		message: &tele.Message{Text: text},
		kv:      make(map[string]interface{}),
	}
}

func (f *fakeContext) Update() tele.Update     { return tele.Update{ID: 1} }
func (f *fakeContext) Chat() *tele.Chat        { return &tele.Chat{ID: f.chatID} }
func (f *fakeContext) Sender() *tele.User      { return &tele.User{ID: f.chatID, FirstName: "Tester"} }
func (f *fakeContext) Text() string            { return f.text }
func (f *fakeContext) Message() *tele.Message  { return f.message }
func (f *fakeContext) Get(k string) interface{} { return f.kv[k] }
func (f *fakeContext) Set(k string, v interface{}) { f.kv[k] = v }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func (f *fakeContext) lastSent() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type mockProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[int64]*domain.Product)}
}

func (m *mockProductRepo) Add(ctx context.Context, product *domain.Product) (int64, error) {
	m.nextID++
	product.ID = m.nextID
	stored := *product
	m.products[m.nextID] = &stored
	return m.nextID, nil
}

func (m *mockProductRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func newTestApp(repo *mockProductRepo) *App {
	return &App{
		cfg: &AppConfig{
			Config: coreconfig.Config{
				Shop: coreconfig.ShopConfig{AdminSecret: "opensesame", OperatorChatID: 1},
			},
		},
		sessions: session.NewStore(),
		catalog:  service.NewCatalogService(repo),
	}
}

func step(t *testing.T, w *wizard, c *fakeContext) {
	t.Helper()
	if err := w.ManagerHandler(c); err != nil {
		t.Fatalf("ManagerHandler: %v", err)
	}
}

func TestAddProductFlow(t *testing.T) {
	repo := newMockProductRepo()
	app := newTestApp(repo)
	w := &wizard{app: app}
	const chatID = int64(10)

	if err := app.beginAddProduct(newFakeContext(chatID, "/add")); err != nil {
		t.Fatalf("beginAddProduct: %v", err)
	}
	if !w.InProgress(chatID) {
		t.Fatal("conversation not started")
	}

	step(t, w, newFakeContext(chatID, "Air Runner"))
	if got := app.sessions.StateOf(chatID); got != session.StateAwaitPrice {
		t.Fatalf("state after name = %q, want %q", got, session.StateAwaitPrice)
	}

	// Invalid price keeps the conversation on the same step.
	bad := newFakeContext(chatID, "cheap")
	step(t, w, bad)
	if got := app.sessions.StateOf(chatID); got != session.StateAwaitPrice {
		t.Fatalf("state after bad price = %q, want %q", got, session.StateAwaitPrice)
	}
	if bad.lastSent() != msgBadPrice {
		t.Fatalf("bad price reply = %q, want %q", bad.lastSent(), msgBadPrice)
	}

	step(t, w, newFakeContext(chatID, "150"))
	if got := app.sessions.StateOf(chatID); got != session.StateAwaitPhoto {
		t.Fatalf("state after price = %q, want %q", got, session.StateAwaitPhoto)
	}

	// Text where a photo is expected keeps the conversation on the photo step.
	noPhoto := newFakeContext(chatID, "here you go")
	step(t, w, noPhoto)
	if noPhoto.lastSent() != msgBadPhoto {
		t.Fatalf("bad photo reply = %q, want %q", noPhoto.lastSent(), msgBadPhoto)
	}

	photoCtx := newFakeContext(chatID, "")
	photoCtx.message = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: "file-123"}}}
	step(t, w, photoCtx)

	if w.InProgress(chatID) {
		t.Fatal("conversation still active after save")
	}
	if len(repo.products) != 1 {
		t.Fatalf("product count = %d, want 1", len(repo.products))
	}
	p := repo.products[1]
	if p.Name != "Air Runner" || p.Price != 150 || p.PhotoID != "file-123" {
		t.Fatalf("stored product = %+v", p)
	}
	if !strings.Contains(photoCtx.lastSent(), "Air Runner") {
		t.Fatalf("confirmation = %q, want product name", photoCtx.lastSent())
	}
}

func TestRemoveProductFlow(t *testing.T) {
	repo := newMockProductRepo()
	repo.Add(context.Background(), &domain.Product{Name: "Air Runner", Price: 150, PhotoID: "f"})
	app := newTestApp(repo)
	w := &wizard{app: app}
	const chatID = int64(11)

	listCtx := newFakeContext(chatID, "/remove")
	if err := app.handleRemove(listCtx); err != nil {
		t.Fatalf("handleRemove: %v", err)
	}
	if !strings.Contains(listCtx.lastSent(), "Air Runner: 1") {
		t.Fatalf("listing = %q, want product line", listCtx.lastSent())
	}
	if got := app.sessions.StateOf(chatID); got != session.StateAwaitDeleteID {
		t.Fatalf("state = %q, want %q", got, session.StateAwaitDeleteID)
	}

	// Non-numeric input stays on the step.
	bad := newFakeContext(chatID, "first one")
	step(t, w, bad)
	if got := app.sessions.StateOf(chatID); got != session.StateAwaitDeleteID {
		t.Fatalf("state after bad id = %q, want %q", got, session.StateAwaitDeleteID)
	}

	step(t, w, newFakeContext(chatID, "1"))
	if w.InProgress(chatID) {
		t.Fatal("conversation still active after delete")
	}
	if len(repo.products) != 0 {
		t.Fatalf("product count = %d, want 0", len(repo.products))
	}
}

func TestRemoveMissingProductEndsConversation(t *testing.T) {
	repo := newMockProductRepo()
	app := newTestApp(repo)
	w := &wizard{app: app}
	const chatID = int64(12)

	app.sessions.Mutate(chatID, func(sess *session.Session) {
		sess.State = session.StateAwaitDeleteID
	})

	c := newFakeContext(chatID, "99")
	step(t, w, c)

	if w.InProgress(chatID) {
		t.Fatal("conversation still active after a miss")
	}
	if !strings.Contains(c.lastSent(), "not found") {
		t.Fatalf("reply = %q, want not-found notice", c.lastSent())
	}
}

func TestTextFallbackGrantsAdmin(t *testing.T) {
	app := newTestApp(newMockProductRepo())
	const chatID = int64(13)

	wrong := newFakeContext(chatID, "letmein")
	if err := app.textFallback(wrong); err != nil {
		t.Fatalf("textFallback: %v", err)
	}
	if app.sessions.IsAdmin(chatID) {
		t.Fatal("wrong secret granted admin")
	}
	if len(wrong.sent) != 0 {
		t.Fatalf("wrong secret got a reply: %q", wrong.lastSent())
	}

	right := newFakeContext(chatID, "opensesame")
	if err := app.textFallback(right); err != nil {
		t.Fatalf("textFallback: %v", err)
	}
	if !app.sessions.IsAdmin(chatID) {
		t.Fatal("correct secret did not grant admin")
	}
	if !strings.Contains(right.lastSent(), "/admin") {
		t.Fatalf("grant reply = %q, want /admin hint", right.lastSent())
	}
}
