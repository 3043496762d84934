package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FellowDalton/foodplan-ingest/internal/domain/dto"
)

type datasetsRequest struct {
	Datasets []dto.StoreDataset `json:"datasets" validate:"required,min=1,dive"`
}

func (c *Controller) ImportDeals(ctx echo.Context) error {
	var req datasetsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	summary, err := c.service.ImportDatasets(ctx.Request().Context(), req.Datasets)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}

func (c *Controller) GenerateSQL(ctx echo.Context) error {
	var req datasetsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	batches, err := c.service.GenerateSQL(ctx.Request().Context(), req.Datasets)
	if err != nil {
		return err
	}

	type response struct {
		Batches []string `json:"batches"`
	}

	return ctx.JSON(http.StatusOK, response{Batches: batches})
}

func (c *Controller) ListStores(ctx echo.Context) error {
	stores, err := c.service.ListStores(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, stores)
}
