package bot

import (
	"errors"
	"fmt"

	"storebot/core/telegram/callbacks"
	"storebot/core/telegram/helpers"
	"storebot/internal/repository"

	tele "gopkg.in/telebot.v4"
)

// Callback uniques for the admin menu and catalog cards.
const (
	cbAdminAdd    = "admin_add"
	cbAdminRemove = "admin_remove"
	cbAdminStats  = "admin_stats"
	cbBuy         = "buy"
)

func (a *App) cbHandleAdd(c tele.Context) error {
	return a.beginAddProduct(c)
}

// cbHandleRemove mirrors /remove but short-circuits on an empty catalog
// instead of entering the conversation.
func (a *App) cbHandleRemove(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return helpers.SendText(c, msgCatalogEmpty)
	}
	return a.handleRemove(c)
}

func (a *App) cbHandleStats(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	stats, err := a.users.Stats(ctx)
	if err != nil {
		return err
	}

	text := fmt.Sprintf("\n\n👥 *Users*\nTotal: *%d*\nNew today: *%d*",
		stats.Total, stats.RegisteredToday)
	return helpers.SendMD(c, text)
}

// cbHandleBuy issues a Telegram Stars invoice for the selected product.
func (a *App) cbHandleBuy(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}

	ctx := helpers.BuildContext(c)
	product, err := a.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return helpers.SendText(c, "Sorry, product not found.")
		}
		return err
	}

	invoice := &tele.Invoice{
		Title:       fmt.Sprintf("Purchase: %s", product.Name),
		Description: fmt.Sprintf("%s for %d Stars", product.Name, product.Price),
		Payload:     buildPurchasePayload(product.ID),
		Currency:    starsCurrency,
		Prices: []tele.Price{
			{Label: product.Name, Amount: int(product.Price)},
		},
	}
	return c.Send(invoice)
}
