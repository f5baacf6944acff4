// Package notify hosts the inbound HTTP API: flight notifications from
// the external scheduling system and the chart endpoint the dashboard
// frontend polls.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/qidlabs/flightcapacity/internal/chart"
	"github.com/qidlabs/flightcapacity/internal/flightquery"
	"github.com/qidlabs/flightcapacity/internal/log"
	"github.com/qidlabs/flightcapacity/pkg/config"
	"go.uber.org/zap"
)

// ResultSource supplies the most recently rendered chart result
type ResultSource interface {
	Latest() chart.Result
}

// Controller represents the notification API server
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	httpCfg  config.HTTPData
	Server   http.Server
	store    *flightquery.Store
	results  ResultSource
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new notification API controller
func NewController(ctx context.Context, wg *sync.WaitGroup, httpCfg config.HTTPData, store *flightquery.Store, results ResultSource, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:     ctx,
		wg:      wg,
		httpCfg: httpCfg,
		store:   store,
		results: results,
		logger:  logger,
	}

	if httpCfg.ListenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.httpCfg.ListenAddr = "0.0.0.0"
	}
	if httpCfg.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8050")
		ctrl.httpCfg.Port = 8050
	}

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.httpCfg.ListenAddr, ctrl.httpCfg.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the notification API server
func (c *Controller) StartController() error {
	log.Info("Starting notification API controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("notification API server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the notification API server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/update-data", c.handlers.UpdateData).Methods(http.MethodPost)
	router.HandleFunc("/reset-data", c.handlers.ResetData).Methods(http.MethodPost)
	router.HandleFunc("/chart", c.handlers.GetChart).Methods(http.MethodGet)
	router.HandleFunc("/api/status", c.handlers.GetStatus).Methods(http.MethodGet)

	return router
}
