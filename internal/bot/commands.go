package bot

import (
	"fmt"
	"strings"
	"time"

	"storebot/core/telegram/helpers"
	"storebot/core/telegram/keyboard"
	"storebot/internal/bot/session"
	"storebot/internal/domain"
	"storebot/internal/service"

	tele "gopkg.in/telebot.v4"
)

func (a *App) handleStart(c tele.Context) error {
	return helpers.SendText(c, "Hello!\n/catalog")
}

func (a *App) handleAdmin(c tele.Context) error {
	firstName := ""
	if sender := c.Sender(); sender != nil {
		firstName = sender.FirstName
	}

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Add 👟", Unique: cbAdminAdd},
		{Text: "Remove 👟", Unique: cbAdminRemove},
		{Text: "Stats 🖥", Unique: cbAdminStats},
	})
	return helpers.SendText(c, fmt.Sprintf("Welcome to the admin panel, %s", firstName),
		&tele.SendOptions{ReplyMarkup: markup})
}

func (a *App) handleAdd(c tele.Context) error {
	return a.beginAddProduct(c)
}

// handleRemove lists the whole catalog as "name: id" lines and enters the
// delete conversation. Unlike the admin menu button, the command enters the
// conversation even when the catalog is empty.
func (a *App) handleRemove(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(msgAskDeleteID)
	for _, p := range products {
		fmt.Fprintf(&b, "\n%s: %d", p.Name, p.ID)
	}

	a.sessions.Mutate(helpers.ConversationID(c), func(sess *session.Session) {
		sess.State = session.StateAwaitDeleteID
	})
	return helpers.SendText(c, b.String())
}

// handleCatalog sends one photo card per product, spaced out to stay under
// Telegram's per-chat send limits. Sends go directly through the bot rather
// than the async dispatcher so card order is preserved.
func (a *App) handleCatalog(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		return helpers.SendText(c, "The catalog is empty for now. Check back later!")
	}

	delay := time.Duration(a.cfg.Shop.CatalogSendDelayMS) * time.Millisecond
	for i, p := range products {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		markup := keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "Buy with Stars ✨", Unique: cbBuy, Data: fmt.Sprintf("%d", p.ID)},
		})
		photo := &tele.Photo{
			File:    tele.File{FileID: p.PhotoID},
			Caption: service.Caption(p),
		}
		if err := c.Send(photo, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup}); err != nil {
			return err
		}
	}
	return nil
}

// beginAddProduct starts the three-step add-product conversation.
func (a *App) beginAddProduct(c tele.Context) error {
	a.sessions.Mutate(helpers.ConversationID(c), func(sess *session.Session) {
		sess.Draft = domain.ProductDraft{}
		sess.State = session.StateAwaitName
	})
	return helpers.SendText(c, msgAskName)
}

// textFallback handles free text that is neither a command nor wizard input.
// Sending the shared admin secret grants the chat sticky admin rights.
func (a *App) textFallback(c tele.Context) error {
	if !secretMatches(a.cfg.Shop.AdminSecret, strings.TrimSpace(c.Text())) {
		return nil
	}

	a.sessions.Mutate(helpers.ConversationID(c), func(sess *session.Session) {
		sess.Admin = true
	})
	return helpers.SendText(c, "Admin rights granted\n/admin")
}
