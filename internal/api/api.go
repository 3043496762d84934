package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/FellowDalton/foodplan-ingest/internal/api/controller"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/config"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/logger"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store"
	"github.com/FellowDalton/foodplan-ingest/internal/service/collector"
	"github.com/FellowDalton/foodplan-ingest/internal/service/deals"
)

type APIService struct {
	router       *echo.Echo
	dealsService *deals.Service
}

func (svc *APIService) Serve(addr string) {
	// ErrServerClosed is what Start returns once Shutdown is called; it is
	// the clean exit path, not a failure.
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store, cfg *config.Config) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.Use(middleware.Logger())
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.dealsService = deals.NewService(store, cfg.Ingest)

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.dealsService, collector.New())

	dealsGroup := api.Group("/deals")
	dealsGroup.POST("/import", cntrl.ImportDeals)
	dealsGroup.POST("/sql", cntrl.GenerateSQL)

	publications := api.Group("/publications")
	publications.POST("/collect", cntrl.CollectPublication)

	stores := api.Group("/stores")
	stores.GET("/list", cntrl.ListStores)

	return svc, nil
}
