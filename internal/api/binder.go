package api

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/FellowDalton/foodplan-ingest/internal/pkg/constants"
)

// Binder decodes JSON request bodies with sonic; everything else falls back
// to echo's default binder.
type Binder struct {
	fallback echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return b.fallback.Bind(i, c)
	}

	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(i); err != nil {
		return fmt.Errorf("decode request: %s: %w", err.Error(), constants.ErrBadRequest)
	}

	return nil
}
