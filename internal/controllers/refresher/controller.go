// Package refresher drives the periodic refresh cycle: on each tick it
// reads the latest flight query, fetches cargo records, reconciles them,
// and swaps in a freshly rendered chart result.
package refresher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qidlabs/flightcapacity/internal/cargo"
	"github.com/qidlabs/flightcapacity/internal/chart"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/pkg/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Controller owns the refresh schedule and the cached chart result
type Controller struct {
	ctx     context.Context
	wg      *sync.WaitGroup
	store   *flightquery.Store
	fetcher cargo.Fetcher
	cfg     config.RefreshData
	cron    *cron.Cron
	logger  *zap.SugaredLogger
	now     func() time.Time

	mu     sync.RWMutex
	latest chart.Result
}

// NewController creates a new refresh controller
func NewController(ctx context.Context, wg *sync.WaitGroup, store *flightquery.Store, fetcher cargo.Fetcher, cfg config.RefreshData, logger *zap.SugaredLogger) *Controller {
	c := &Controller{
		ctx:     ctx,
		wg:      wg,
		store:   store,
		fetcher: fetcher,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}

	// A fetch slower than the interval must not pile up ticks
	c.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	return c
}

// StartController runs one immediate refresh, then starts the schedule.
// Cron jobs only fire after the first interval elapses; without the
// immediate run the dashboard would sit on a stale or missing chart
// until then.
func (c *Controller) StartController() error {
	c.logger.Info("Starting refresh controller...")

	interval := c.cfg.IntervalDuration()
	c.Refresh()

	_, err := c.cron.AddFunc(fmt.Sprintf("@every %s", interval), c.Refresh)
	if err != nil {
		return fmt.Errorf("error scheduling refresh job: %v", err)
	}
	c.cron.Start()
	c.logger.Infof("chart refresh scheduled every %v", interval)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		c.logger.Info("Stopping refresh controller...")
		stopCtx := c.cron.Stop()
		<-stopCtx.Done()
	}()

	return nil
}

// Latest returns the most recently rendered chart result
func (c *Controller) Latest() chart.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Refresh runs one full fetch/reconcile/render cycle and swaps the cached
// result. Fetch errors become an error-state result; they never stop the
// schedule.
func (c *Controller) Refresh() {
	now := c.now()
	query := c.store.Get()

	if !query.Complete() {
		c.setLatest(chart.Build(query, cargo.Reconciled{}, nil, now))
		return
	}

	records, err := c.fetcher.Fetch(query)
	if err != nil {
		c.logger.Errorf("error fetching cargo records for flight %s: %v", query.Number, err)
		c.setLatest(chart.Build(query, cargo.Reconciled{}, err, now))
		return
	}

	reconciled := cargo.Reconcile(records)
	c.setLatest(chart.Build(query, reconciled, nil, now))

	c.logger.Debugf("refreshed chart for flight %s: %d records, %d dates",
		query.Number, len(records), len(reconciled.Dates))
}

func (c *Controller) setLatest(result chart.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = result
}
