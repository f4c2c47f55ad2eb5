package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
)

// Raw lookup endpoints, only mounted in dev mode. They expose the
// external gateway's answers directly, which helps when debugging why a
// tariff resolution came back empty.

func (s *Server) AreaByPostalCode(c *gin.Context) {
	code, err := strconv.Atoi(c.Query("code"))
	if err != nil {
		s.AbortWithError(c, apperr.Validation("code", c.Query("code")))
		return
	}

	area, err := s.lookup.ByPostalCode(c.Request.Context(), code)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, area)
}

func (s *Server) AreaByAddress(c *gin.Context) {
	address := c.Query("address")
	locality := c.Query("locality")
	if address == "" || locality == "" {
		s.AbortWithError(c, apperr.Validation("address", "address and locality are required"))
		return
	}

	area, err := s.lookup.ByAddress(c.Request.Context(), address, locality)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, area)
}

func (s *Server) AreaByCoordinates(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		s.AbortWithError(c, apperr.Validation("lat", c.Query("lat")))
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		s.AbortWithError(c, apperr.Validation("lon", c.Query("lon")))
		return
	}

	area, err := s.lookup.ByCoordinates(c.Request.Context(), lat, lon)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, area)
}
