package service

import (
	"context"
	"lendr/config"
	"time"

	"github.com/rs/zerolog/log"
)

// Completer periodically moves approved rentals whose end date has passed to
// completed, so items become bookable again without any user action.
type Completer struct {
	service  Rental
	interval time.Duration
	stop     chan struct{}
}

func NewCompleter(service Rental, cfg *config.Config) *Completer {
	return &Completer{
		service:  service,
		interval: time.Duration(cfg.Rental.CompleterIntervalSeconds) * time.Second,
		stop:     make(chan struct{}),
	}
}

// Start runs the completion loop until Stop is called or the context is
// cancelled. An immediate sweep runs on startup to catch rentals that expired
// while the service was down.
func (c *Completer) Start(ctx context.Context) {
	go func() {
		c.sweep(ctx)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.sweep(ctx)
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Completer) Stop() {
	close(c.stop)
}

func (c *Completer) sweep(ctx context.Context) {
	completed, err := c.service.CompleteExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("rental completion sweep failed")

		return
	}

	if completed > 0 {
		log.Info().Int("completed", completed).Msg("completed expired rentals")
	}
}
