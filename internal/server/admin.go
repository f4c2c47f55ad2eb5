package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
	"github.com/engrate/eg-power-tariffs-plugin/internal/version"
)

func (s *Server) Health(c *gin.Context) {
	respondData(c, gin.H{"status": "ok"})
}

func (s *Server) Version(c *gin.Context) {
	respondData(c, gin.H{"version": version.Current()})
}

// TriggerImport runs one importer on demand. The import happens in the
// background; the endpoint answers as soon as the job is accepted.
func (s *Server) TriggerImport(c *gin.Context) {
	kind := c.Param("kind")

	var run func(context.Context) error
	switch kind {
	case "operators":
		run = s.importer.LoadGridOperators
	case "grid-areas":
		run = s.importer.LoadMeteringGridAreas
	case "tariffs":
		run = s.importer.LoadTariffDefinitions
	default:
		s.AbortWithError(c, apperr.Validation("kind", kind))
		return
	}

	go func() {
		if err := run(context.Background()); err != nil {
			s.log.Error("import failed", zap.String("kind", kind), zap.Error(err))
			s.alerter.Alert(context.Background(), "import "+kind+" failed: "+err.Error())
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"status": "accepted", "kind": kind}})
}
