package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/database"
)

type metricsHandler struct {
	responder   Responder
	logger      zerolog.Logger
	metricsRepo *database.MetricsRepo
}

func newMetricsHandler(metricsRepo *database.MetricsRepo) metricsHandler {
	logger := log.With().Str("handlerName", "metricsHandler").Logger()

	return metricsHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		metricsRepo: metricsRepo,
	}
}

// getDashboard godoc
//
//	@Summary		Dashboard metrics
//	@Description	Aggregated entity counts plus the five most recent students
//	@Produce		json
//	@Success		200	{object}	database.DashboardMetrics
//	@Router			/metrics/dashboard [get]
func (h metricsHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := h.metricsRepo.DashboardMetrics(r.Context())
		h.responder.WriteJSON(w, metrics)
	}
}
