package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the API on the engine. Dev and admin surfaces
// are mode-gated; the public tariff resolution routes are always on.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.Use(s.requestLogger())

	tariffs := engine.Group("/power-tariffs")
	tariffs.GET("/operators", s.ListOperators)
	tariffs.GET("/definitions", s.ListTariffs)
	tariffs.GET("/:country_code/mga/:mga_code", s.TariffsByMGA)
	tariffs.GET("/:country_code/postal-code/:postal_code", s.TariffsByPostalCode)
	tariffs.GET("/:country_code/lat/:lat/long/:long", s.TariffsByCoordinates)
	tariffs.GET("/:country_code/address/:address/city/:city", s.TariffsByAddress)

	if s.cfg.HTTP.DevMode {
		dev := engine.Group("/dev/areas")
		dev.GET("/postal-code", s.AreaByPostalCode)
		dev.GET("/address", s.AreaByAddress)
		dev.GET("/coordinates", s.AreaByCoordinates)
	}

	if s.cfg.HTTP.AdminMode {
		admin := engine.Group("/admin")
		admin.GET("/health", s.Health)
		admin.GET("/version", s.Version)
		admin.POST("/import/:kind", s.TriggerImport)
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		s.metrics.Registry, promhttp.HandlerOpts{})))
}
