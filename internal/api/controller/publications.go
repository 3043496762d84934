package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FellowDalton/foodplan-ingest/internal/domain/dto"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/config"
)

type collectRequest struct {
	StoreName     string `json:"store_name" validate:"required"`
	PublicationID string `json:"publication_id" validate:"required"`
	PageCount     int    `json:"page_count"`
}

// CollectPublication fetches one publication feed and imports it in the
// same request.
func (c *Controller) CollectPublication(ctx echo.Context) error {
	var req collectRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	dataset, err := c.collector.CollectPublication(ctx.Request().Context(), config.FeedConfig{
		StoreName:     req.StoreName,
		PublicationID: req.PublicationID,
		PageCount:     req.PageCount,
	})
	if err != nil {
		return err
	}

	summary, err := c.service.ImportDatasets(ctx.Request().Context(), []dto.StoreDataset{*dataset})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}
