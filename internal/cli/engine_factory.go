package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/bankocr"
	"github.com/aretw0/bankocr/internal/config"
	"github.com/aretw0/bankocr/pkg/adapters/memory"
	"github.com/aretw0/bankocr/pkg/adapters/redis"
	"github.com/aretw0/bankocr/pkg/metrics"
	"github.com/aretw0/bankocr/pkg/persistence/middleware"
	"github.com/aretw0/bankocr/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// EngineDeps is what NewEngine builds besides the engine itself.
type EngineDeps struct {
	Metrics *metrics.Recorder
	// Close releases backend connections.
	Close func() error
}

// NewEngine initializes a bankocr Engine from the config:
// the store and locker follow store.driver, and metrics register on reg.
func NewEngine(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*bankocr.Engine, EngineDeps, error) {
	deps := EngineDeps{
		Metrics: metrics.New(reg),
		Close:   func() error { return nil },
	}

	opts := []bankocr.Option{
		bankocr.WithLogger(logger),
		bankocr.WithMetrics(deps.Metrics),
		bankocr.WithPadding(cfg.PadRows),
	}

	var mws []middleware.Middleware
	if cfg.Store.Mask > 0 {
		mws = append(mws, middleware.NewMaskMiddleware(cfg.Store.Mask))
	}
	wrap := func(store ports.BatchStore) bankocr.Option {
		return bankocr.WithStore(middleware.Chain(store, mws...))
	}

	switch cfg.Store.Driver {
	case config.DriverRedis:
		rc := cfg.Store.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB,
			redis.WithPrefix(rc.Prefix),
			redis.WithTTL(rc.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, deps, fmt.Errorf("redis unreachable at %s: %w", rc.Addr, err)
		}
		logger.Debug("Using redis store", "addr", rc.Addr, "prefix", rc.Prefix)
		opts = append(opts,
			wrap(store),
			bankocr.WithLocker(redis.NewLocker(store.Client(), rc.Prefix)),
		)
		deps.Close = store.Close
	case config.DriverMemory, "":
		opts = append(opts,
			wrap(memory.NewStore()),
			bankocr.WithLocker(memory.NewLocker()),
		)
	default:
		return nil, deps, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return bankocr.New(opts...), deps, nil
}
