package controllers

import (
	"catalog/errs"
	"catalog/store"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HealthController struct {
	pinger store.Pinger
}

func NewHealthController(pinger store.Pinger) *HealthController {
	return &HealthController{pinger: pinger}
}

// Healthz reports 503 while the store is unreachable.
func (hc *HealthController) Healthz(c *gin.Context) (int, gin.H, error) {
	if err := hc.pinger.Ping(c.Request.Context()); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Store ping failed")
		return 0, nil, errs.NewServiceUnavailableError("Store unavailable")
	}
	return http.StatusOK, gin.H{"status": "ok"}, nil
}
