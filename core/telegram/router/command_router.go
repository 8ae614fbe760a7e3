package router

import (
	"storebot/core/logger"
	tg "storebot/core/telegram"
	tghelpers "storebot/core/telegram/helpers"
	"storebot/core/telegram/middleware"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	// FSM, when set, lets an active conversation consume command input
	// instead of dispatching it. Wizard steps accept arbitrary text.
	FSM           FSM
	Auth          middleware.Authorizer
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers wrapped with shared middleware.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOpts := middleware.AdminOptions{
		Auth:     opts.Auth,
		OnReject: opts.OnAdminReject,
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		h := def.Handler
		if def.AdminOnly {
			h = middleware.AdminOnlyMiddleware(adminOpts)(h)
		}
		h = withFSMOverride(opts.FSM, h)
		h = middleware.MessageMetricsMiddleware(h)
		h = middleware.LoggerMiddleware(h)
		h = middleware.RecoverMiddleware(h)
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  h,
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}

func withFSMOverride(fsmMgr FSM, next tele.HandlerFunc) tele.HandlerFunc {
	if fsmMgr == nil {
		return next
	}
	return func(c tele.Context) error {
		if fsmMgr.InProgress(tghelpers.ConversationID(c)) {
			return fsmMgr.ManagerHandler(c)
		}
		return next(c)
	}
}
