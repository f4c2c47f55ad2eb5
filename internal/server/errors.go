package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
)

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// AbortWithError translates the error taxonomy into HTTP statuses.
// Uncontrolled errors get a correlation id for support triage and raise
// an alert; the raw message never reaches the client in that case.
func (s *Server) AbortWithError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.KindValidation, apperr.KindUnexpectedValue:
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperr.KindNotEnabled:
		c.AbortWithStatusJSON(http.StatusNotImplemented, errorResponse{Error: err.Error()})
	default:
		correlationID := uuid.NewString()
		s.log.Error("unhandled error",
			zap.String("correlation_id", correlationID),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		s.alerter.Alert(c.Request.Context(), err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Error:         "internal error",
			CorrelationID: correlationID,
		})
	}
}
