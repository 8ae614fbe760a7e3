package router

import (
	"time"

	tg "storebot/core/telegram"
	"storebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// PaymentOptions carries the handlers for the two payment touchpoints.
type PaymentOptions struct {
	// OnCheckout answers pre-checkout queries. Telegram cancels the purchase
	// if no answer arrives within ten seconds.
	OnCheckout tele.HandlerFunc
	// OnSuccess handles messages carrying a successful payment.
	OnSuccess tele.HandlerFunc
}

// PaymentRoutes wires checkout and payment endpoints through shared middleware.
func PaymentRoutes(opts PaymentOptions) []tg.Route {
	routes := make([]tg.Route, 0, 2)

	if opts.OnCheckout != nil {
		h := func(c tele.Context) error {
			start := time.Now()
			return handleWithSummary(c, "checkout", start, "", "", func() error {
				return opts.OnCheckout(c)
			})
		}
		routes = append(routes, tg.Route{
			Endpoint: tele.OnCheckout,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(h)),
		})
	}

	if opts.OnSuccess != nil {
		h := func(c tele.Context) error {
			start := time.Now()
			return handleWithSummary(c, "payment", start, "", "", func() error {
				return opts.OnSuccess(c)
			})
		}
		routes = append(routes, tg.Route{
			Endpoint: tele.OnPayment,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(middleware.MessageMetricsMiddleware(h))),
		})
	}

	return routes
}
