package bot

import (
	"fmt"
	"strconv"
	"strings"

	"storebot/core/telegram/helpers"
	"storebot/internal/bot/session"
	"storebot/internal/domain"

	tele "gopkg.in/telebot.v4"
)

// Wizard prompts and validation replies.
const (
	msgAskName      = "Enter the product name"
	msgAskPrice     = "Enter the price (number only)"
	msgAskPhoto     = "Send the product photo"
	msgAskDeleteID  = "Enter the product ID"
	msgBadFormat    = "Invalid format!"
	msgBadPrice     = "Invalid format (enter a number only!)"
	msgBadPhoto     = "Invalid format (send a photo!)"
	msgBadDeleteID  = "Invalid format (enter a number!)"
	msgCatalogEmpty = "The catalog is empty."
)

// wizard drives the multi-step add-product and remove-product conversations.
// It satisfies the router FSM interface so active conversations consume
// input before command dispatch.
type wizard struct {
	app *App
}

func (w *wizard) InProgress(conversationID int64) bool {
	return w.app.sessions.InProgress(conversationID)
}

// ManagerHandler advances the conversation one step based on the stored state.
func (w *wizard) ManagerHandler(c tele.Context) error {
	chatID := helpers.ConversationID(c)
	state := w.app.sessions.StateOf(chatID)

	switch state {
	case session.StateAwaitName:
		return w.stepName(c, chatID)
	case session.StateAwaitPrice:
		return w.stepPrice(c, chatID)
	case session.StateAwaitPhoto:
		return w.stepPhoto(c, chatID)
	case session.StateAwaitDeleteID:
		return w.stepDeleteID(c, chatID)
	default:
		return nil
	}
}

func (w *wizard) stepName(c tele.Context, chatID int64) error {
	name := strings.TrimSpace(c.Text())
	if name == "" {
		return helpers.SendText(c, msgBadFormat)
	}

	w.app.sessions.Mutate(chatID, func(sess *session.Session) {
		sess.Draft.Name = name
		sess.State = session.StateAwaitPrice
	})
	return helpers.SendText(c, msgAskPrice)
}

func (w *wizard) stepPrice(c tele.Context, chatID int64) error {
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return helpers.SendText(c, msgBadFormat)
	}

	price, err := strconv.ParseInt(text, 10, 64)
	if err != nil || price <= 0 {
		return helpers.SendText(c, msgBadPrice)
	}

	w.app.sessions.Mutate(chatID, func(sess *session.Session) {
		sess.Draft.Price = price
		sess.State = session.StateAwaitPhoto
	})
	return helpers.SendText(c, msgAskPhoto)
}

func (w *wizard) stepPhoto(c tele.Context, chatID int64) error {
	msg := c.Message()
	if msg == nil || msg.Photo == nil {
		return helpers.SendText(c, msgBadPhoto)
	}

	var draft domain.ProductDraft
	w.app.sessions.Mutate(chatID, func(sess *session.Session) {
		sess.Draft.PhotoID = msg.Photo.FileID
		draft = sess.Draft
	})

	ctx := helpers.BuildContext(c)
	product, err := w.app.catalog.Add(ctx, draft)
	if err != nil {
		return err
	}

	w.app.sessions.Reset(chatID)
	return helpers.SendText(c, fmt.Sprintf("✅ Product '%s' saved!", product.Name))
}

func (w *wizard) stepDeleteID(c tele.Context, chatID int64) error {
	text := strings.TrimSpace(c.Text())
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return helpers.SendText(c, msgBadDeleteID)
	}

	ctx := helpers.BuildContext(c)
	deleted, err := w.app.catalog.Remove(ctx, id)

	// The conversation ends regardless of the lookup result.
	w.app.sessions.Reset(chatID)

	if err != nil {
		return err
	}
	if deleted {
		return helpers.SendText(c, fmt.Sprintf("Product %d removed from the catalog!\n/add\n/catalog", id))
	}
	return helpers.SendText(c, fmt.Sprintf("Product %d not found", id))
}
