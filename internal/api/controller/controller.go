package controller

import (
	"github.com/FellowDalton/foodplan-ingest/internal/service/collector"
	"github.com/FellowDalton/foodplan-ingest/internal/service/deals"
)

type Controller struct {
	service   *deals.Service
	collector *collector.Collector
}

func NewController(service *deals.Service, collector *collector.Collector) *Controller {
	return &Controller{service: service, collector: collector}
}
