package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storebot/core/logger"
	"storebot/core/telegram/helpers"
	"storebot/internal/repository"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// starsCurrency is the Telegram Stars currency code. Stars invoices carry no
// provider token.
const starsCurrency = "XTR"

const purchasePayloadPrefix = "purchase_"

func buildPurchasePayload(productID int64) string {
	return fmt.Sprintf("%s%d", purchasePayloadPrefix, productID)
}

// parsePurchasePayload extracts the product ID from an invoice payload.
// The second return distinguishes a foreign payload from a malformed one.
func parsePurchasePayload(payload string) (id int64, known bool, err error) {
	rest, found := strings.CutPrefix(payload, purchasePayloadPrefix)
	if !found {
		return 0, false, nil
	}
	id, perr := strconv.ParseInt(rest, 10, 64)
	if perr != nil {
		return 0, true, fmt.Errorf("malformed purchase payload %q", payload)
	}
	return id, true, nil
}

// handleCheckout approves every pre-checkout query. Stock is not tracked, so
// there is nothing to verify before charging.
func (a *App) handleCheckout(c tele.Context) error {
	return c.Accept()
}

// handlePayment confirms a successful payment to the buyer and notifies the
// operator chat with the purchased product's photo.
func (a *App) handlePayment(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Payment == nil {
		return nil
	}

	ctx := helpers.BuildContext(c)
	payload := msg.Payment.Payload

	id, known, err := parsePurchasePayload(payload)
	if !known {
		logger.LogEvent(ctx, logger.SVCPayments, slog.LevelWarn, "payment.unknown_type",
			slog.String("status", "skip"),
			slog.String("payload", logger.SanitizeLimit(payload, 128)),
		)
		return helpers.SendText(c, "Unknown payment type.")
	}
	if err != nil {
		logger.LogEvent(ctx, logger.SVCPayments, slog.LevelWarn, "payment.bad_payload",
			slog.String("status", "fail"),
			slog.String("payload", logger.SanitizeLimit(payload, 128)),
		)
		return helpers.SendText(c, "An error occurred while processing the product ID.")
	}

	logger.LogEvent(ctx, logger.SVCPayments, slog.LevelInfo, "payment.received",
		slog.String("status", "ok"),
		slog.Int64("product_id", id),
	)

	if err := helpers.SendText(c, fmt.Sprintf("✅ Thanks for your purchase! You bought product ID: %d.", id)); err != nil {
		return err
	}

	return a.notifyOperator(c, id)
}

// notifyOperator forwards the purchase to the operator chat. A product that
// vanished between invoice and payment is logged and skipped, the buyer has
// already been thanked.
func (a *App) notifyOperator(c tele.Context, productID int64) error {
	ctx := helpers.BuildContext(c)

	product, err := a.catalog.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			logger.LogEvent(ctx, logger.SVCPayments, slog.LevelWarn, "payment.product_gone",
				slog.String("status", "skip"),
				slog.Int64("product_id", productID),
			)
			return nil
		}
		return err
	}

	payer := "N/A"
	if sender := c.Sender(); sender != nil && sender.Username != "" {
		payer = sender.Username
	}

	photo := &tele.Photo{
		File:    tele.File{FileID: product.PhotoID},
		Caption: fmt.Sprintf("User @%s paid for product %s: %d", payer, product.Name, product.ID),
	}
	_, err = c.Bot().Send(tele.ChatID(a.cfg.Shop.OperatorChatID), photo)
	if err != nil {
		logger.LogEvent(ctx, logger.SVCPayments, slog.LevelError, "payment.notify_fail",
			slog.String("status", "fail"),
			slog.Int64("product_id", productID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return err
	}
	return nil
}
