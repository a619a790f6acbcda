package http

import (
	"context"
	"log/slog"

	"github.com/example/reunionpro/internal/logging"
)

type contextKey string

const roomNameContextKey contextKey = "room_name"

// ContextWithRoomName injects the room name resolved from the request path.
func ContextWithRoomName(ctx context.Context, roomName string) context.Context {
	return context.WithValue(ctx, roomNameContextKey, roomName)
}

// RoomNameFromContext extracts a room name previously associated with the context.
func RoomNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(roomNameContextKey).(string)
	return name, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
