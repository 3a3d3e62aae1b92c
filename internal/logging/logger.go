// Package logging defines the structured logger handed to services and
// handlers. Arguments after the message are key-value pairs:
//
//	log.Info(ctx, "product updated", "id", id, "images", n)
package logging

import "context"

type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
