package bot

import (
	"context"
	"time"

	"storebot/core/logger"
	tg "storebot/core/telegram"
	"storebot/core/telegram/commands"
	"storebot/core/telegram/helpers"
	"storebot/core/telegram/middleware"
	"storebot/core/telegram/router"
	sessionstore "storebot/internal/bot/session"
	"storebot/internal/repository"
	"storebot/internal/service"

	"log/slog"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"
)

// App wires repositories, services, and bot handlers together.
type App struct {
	cfg      *AppConfig
	db       *sqlx.DB
	sessions *sessionstore.Store
	users    service.UserService
	catalog  service.CatalogService
}

// NewApp builds the application graph on top of an open database handle.
func NewApp(cfg *AppConfig, db *sqlx.DB) *App {
	return &App{
		cfg:      cfg,
		db:       db,
		sessions: sessionstore.NewStore(),
		users:    service.NewUserService(repository.NewUserRepository(db)),
		catalog:  service.NewCatalogService(repository.NewProductRepository(db)),
	}
}

func (a *App) buildRegistry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Start the bot",
	})
	reg.RegisterCommand("/catalog", commands.Command{
		Handler:     a.handleCatalog,
		Description: "Browse the catalog",
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     a.handleAdmin,
		Description: "Open the admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/add", commands.Command{
		Handler:     a.handleAdd,
		Description: "Add a product",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/remove", commands.Command{
		Handler:     a.handleRemove,
		Description: "Remove a product",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbAdminAdd, a.adminOnly(a.cbHandleAdd))
	_ = reg.RegisterCallback(cbAdminRemove, a.adminOnly(a.cbHandleRemove))
	_ = reg.RegisterCallback(cbAdminStats, a.adminOnly(a.cbHandleStats))
	_ = reg.RegisterCallback(cbBuy, a.cbHandleBuy)

	reg.SetTextFallback(a.textFallback)
	// Unknown button presses are acked by the router and otherwise ignored.
	reg.SetCallbackNotFound(func(c tele.Context) error { return nil })
	return reg
}

// adminOnly guards callback handlers the same way AdminOnly commands are
// guarded. Rejected presses are dropped silently.
func (a *App) adminOnly(h tele.HandlerFunc) tele.HandlerFunc {
	auth := &sessionAuthorizer{sessions: a.sessions}
	return middleware.AdminOnlyMiddleware(middleware.AdminOptions{Auth: auth})(h)
}

// registrationGate ensures every interacting chat exists in the users table
// before any handler runs. Registration failures are logged, not fatal; the
// update still gets handled.
func (a *App) registrationGate(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender != nil {
			ctx := helpers.BuildContext(c)
			username, firstName := sender.Username, sender.FirstName
			if _, err := a.users.EnsureRegistered(ctx, helpers.ConversationID(c), username, firstName); err != nil {
				logger.LogEvent(ctx, logger.SVCUsers, slog.LevelError, "user.register_fail",
					slog.String("status", "fail"),
					slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
				)
			}
		}
		return next(c)
	}
}

// TelegramRunOptions assembles everything the bot runtime needs.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := a.buildRegistry()
	auth := &sessionAuthorizer{sessions: a.sessions}
	wiz := &wizard{app: a}

	middlewares := []tg.Middleware{
		{Name: "registration_gate", Use: a.registrationGate},
	}
	if interval := a.cfg.RateLimit.IntervalMS; interval > 0 {
		exclude := make(map[string]struct{}, len(a.cfg.RateLimit.ExcludeUpdates))
		for _, kind := range a.cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		middlewares = append(middlewares, tg.Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: time.Duration(interval) * time.Millisecond,
				Exclude:  exclude,
			}),
		})
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		FSM:  wiz,
		Auth: auth,
	})
	routes = append(routes, router.TextRoutes(wiz, reg, router.TextOptions{Auth: auth})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.PaymentRoutes(router.PaymentOptions{
		OnCheckout: a.handleCheckout,
		OnSuccess:  a.handlePayment,
	})...)

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart:     a.logCatalogSnapshot,
	}, nil
}

// logCatalogSnapshot dumps the catalog at startup so operators can confirm
// the database is reachable and populated.
func (a *App) logCatalogSnapshot(ctx context.Context, rt tg.Runtime) error {
	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		logger.LogEvent(ctx, logger.SVCCatalog, slog.LevelInfo, "catalog.item",
			slog.String("status", "ok"),
			slog.Int64("product_id", p.ID),
			slog.String("product", logger.SanitizeLimit(p.Name, 128)),
			slog.Int64("price", p.Price),
		)
	}
	logger.LogEvent(ctx, logger.SVCCatalog, slog.LevelInfo, "catalog.loaded",
		slog.String("status", "ok"),
		slog.Int("count", len(products)),
	)
	return nil
}
