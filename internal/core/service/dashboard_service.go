package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/metrics"
)

const viewDashboard = "dashboard"

type DashboardService struct {
	api    ports.StatsAPI
	logger zerolog.Logger
}

func NewDashboardService(api ports.StatsAPI, logger zerolog.Logger) *DashboardService {
	return &DashboardService{api: api, logger: logger}
}

// LoadDashboard fetches the stats. A failure is logged and rendered as an
// empty dashboard.
func (s *DashboardService) LoadDashboard(ctx context.Context) domain.DashboardView {
	stats, err := s.api.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load dashboard stats")
		metrics.ListLoadsTotal.WithLabelValues(viewDashboard, "failed").Inc()
		return domain.DashboardView{Failed: true}
	}
	metrics.ListLoadsTotal.WithLabelValues(viewDashboard, "ok").Inc()
	return domain.DashboardView{Stats: &stats}
}
