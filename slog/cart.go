// Package slog provides log/slog decorators for the cart and search ports.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/csc"
)

// Ensure LoggingCartStorage implements csc.CartStorage.
var _ csc.CartStorage = (*LoggingCartStorage)(nil)

// LoggingCartStorage wraps a CartStorage with debug logging.
type LoggingCartStorage struct {
	next   csc.CartStorage
	logger *slog.Logger
}

// NewLoggingCartStorage creates a new LoggingCartStorage.
func NewLoggingCartStorage(next csc.CartStorage, logger *slog.Logger) *LoggingCartStorage {
	return &LoggingCartStorage{next: next, logger: logger}
}

// Load delegates to the wrapped storage and logs the operation.
func (s *LoggingCartStorage) Load(ctx context.Context) (cart csc.Cart, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cart load",
			"lines", len(cart),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Save delegates to the wrapped storage and logs the operation.
func (s *LoggingCartStorage) Save(ctx context.Context, cart csc.Cart) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cart save",
			"lines", len(cart),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, cart)
}

// Ensure LoggingCartObserver implements csc.CartObserver.
var _ csc.CartObserver = (*LoggingCartObserver)(nil)

// LoggingCartObserver wraps a CartObserver and logs each view refresh.
type LoggingCartObserver struct {
	next   csc.CartObserver
	logger *slog.Logger
}

// NewLoggingCartObserver creates a new LoggingCartObserver.
func NewLoggingCartObserver(next csc.CartObserver, logger *slog.Logger) *LoggingCartObserver {
	return &LoggingCartObserver{next: next, logger: logger}
}

// CartChanged delegates to the wrapped observer and logs the refresh.
func (o *LoggingCartObserver) CartChanged(ctx context.Context, cart csc.Cart) (err error) {
	defer func(begin time.Time) {
		o.logger.Info("cart view refresh",
			"lines", len(cart),
			"total", cart.Total(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.CartChanged(ctx, cart)
}

// BadgeChanged delegates to the wrapped observer and logs the refresh.
func (o *LoggingCartObserver) BadgeChanged(ctx context.Context, count int) (err error) {
	defer func(begin time.Time) {
		o.logger.Info("cart badge refresh",
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.BadgeChanged(ctx, count)
}
