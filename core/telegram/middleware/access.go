package middleware

import tele "gopkg.in/telebot.v4"

// Authorizer decides whether a chat is allowed to use privileged handlers.
type Authorizer interface {
	IsAdmin(chatID int64) bool
}

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	Auth     Authorizer
	OnReject tele.HandlerFunc
}

// WithAdminCheck wraps a command handler enforcing admin-only execution when required.
func WithAdminCheck(opts AdminOptions, cmd struct {
	AdminOnly bool
	Handler   tele.HandlerFunc
}) tele.HandlerFunc {
	if !cmd.AdminOnly || opts.Auth == nil {
		return cmd.Handler
	}
	return func(c tele.Context) error {
		if !allowed(opts.Auth, c) {
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
		return cmd.Handler(c)
	}
}

// AdminOnlyMiddleware ensures that only authorized chats can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Auth != nil && !allowed(opts.Auth, c) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}

func allowed(auth Authorizer, c tele.Context) bool {
	if chat := c.Chat(); chat != nil {
		return auth.IsAdmin(chat.ID)
	}
	if sender := c.Sender(); sender != nil {
		return auth.IsAdmin(sender.ID)
	}
	return false
}
