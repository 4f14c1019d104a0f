package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shiori-app/shiori/internal/api/models"
	"github.com/shiori-app/shiori/internal/api/response"
	"github.com/shiori-app/shiori/internal/odpt"
	"github.com/shiori-app/shiori/internal/provider/resilience"
	"github.com/shiori-app/shiori/internal/station"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version     string
	buildTime   string
	mapRenderer string
	registry    *resilience.Registry
	stationData *odpt.Service
	catalog     *station.Catalog
}

// OpsConfig holds the dependencies surfaced by the status endpoint.
type OpsConfig struct {
	Version     string
	BuildTime   string
	MapRenderer string
	Registry    *resilience.Registry
	StationData *odpt.Service
	Catalog     *station.Catalog
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	return &OpsHandler{
		version:     cfg.Version,
		buildTime:   cfg.BuildTime,
		mapRenderer: cfg.MapRenderer,
		registry:    cfg.Registry,
		stationData: cfg.StationData,
		catalog:     cfg.Catalog,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The catalog
// always carries the seed stations, so readiness only verifies the process
// can serve.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem, provider, and
// capability status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	status := models.SystemStatus{
		Status:       models.HealthStatusOK,
		Time:         models.Timestamp(time.Now()),
		Subsystems:   h.subsystems(),
		Providers:    h.providers(),
		Capabilities: models.Capabilities{MapRenderer: h.mapRenderer},
	}

	for _, p := range status.Providers {
		if p.Status == models.HealthStatusFail {
			status.Status = models.HealthStatusDegraded
			break
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) subsystems() []models.SubsystemStatus {
	subsystems := []models.SubsystemStatus{}

	if h.catalog != nil {
		count := h.catalog.Len()
		detail := "stations: " + strconv.Itoa(count)
		status := models.HealthStatusOK
		if count == 0 {
			status = models.HealthStatusFail
		}
		subsystems = append(subsystems, models.SubsystemStatus{
			Name:   "station-catalog",
			Status: status,
			Detail: &detail,
		})
	}

	if h.stationData != nil {
		stats := h.stationData.CacheStats()
		status := models.HealthStatusOK
		detail := "records: " + strconv.Itoa(stats.RecordCount)
		if !stats.HasCache {
			status = models.HealthStatusDegraded
			detail = "no cached data yet"
		} else if !stats.CacheFresh {
			status = models.HealthStatusDegraded
			detail = "cache stale"
		}
		subsystems = append(subsystems, models.SubsystemStatus{
			Name:   "station-data-cache",
			Status: status,
			Detail: &detail,
		})
	}

	return subsystems
}

func (h *OpsHandler) providers() []models.ProviderStatus {
	if h.registry == nil {
		return []models.ProviderStatus{}
	}

	healthList := h.registry.GetAllHealth()
	providers := make([]models.ProviderStatus, 0, len(healthList))
	for _, ph := range healthList {
		status := models.HealthStatusOK
		switch {
		case ph.IsUnhealthy():
			status = models.HealthStatusFail
		case ph.IsDegraded():
			status = models.HealthStatusDegraded
		}

		p := models.ProviderStatus{
			Provider: ph.Name,
			Status:   status,
		}
		if ph.LastSuccessAt != nil {
			ts := models.Timestamp(*ph.LastSuccessAt)
			p.LastSuccessAt = &ts
		}
		if ph.LastFailureAt != nil {
			ts := models.Timestamp(*ph.LastFailureAt)
			p.LastFailureAt = &ts
		}
		if ph.LastError != "" {
			msg := ph.LastError
			p.Message = &msg
		}
		providers = append(providers, p)
	}

	return providers
}
