package server

import (
	"strconv"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/engrate/eg-power-tariffs-plugin/internal/apperr"
)

// countryCode validates the :country_code path segment. Resolution is
// scoped by a two-letter country code; anything else is rejected before
// it reaches the service.
func countryCode(c *gin.Context) (string, error) {
	code := c.Param("country_code")
	if len(code) != 2 {
		return "", apperr.Validation("country_code", code)
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", apperr.Validation("country_code", code)
		}
	}
	return code, nil
}

// @Summary      List Grid Operators
// @Description  List every grid operator known to the plugin
// @Tags         power-tariffs
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /power-tariffs/operators [get]
func (s *Server) ListOperators(c *gin.Context) {
	resp, err := s.tariffSvc.ListOperators(c.Request.Context())
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Tariff Definitions
// @Description  List every stored power tariff with its compositions
// @Tags         power-tariffs
// @Produce      json
// @Success      200  {object}  DataResponse
// @Router       /power-tariffs/definitions [get]
func (s *Server) ListTariffs(c *gin.Context) {
	resp, err := s.tariffSvc.ListTariffs(c.Request.Context())
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Tariffs By Grid Area
// @Description  Resolve tariffs for one metering grid area
// @Tags         power-tariffs
// @Produce      json
// @Param        country_code  path  string  true  "Country code"
// @Param        mga_code      path  string  true  "Metering grid area code"
// @Success      200  {object}  DataResponse
// @Router       /power-tariffs/{country_code}/mga/{mga_code} [get]
func (s *Server) TariffsByMGA(c *gin.Context) {
	country, err := countryCode(c)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}

	resp, err := s.tariffSvc.GetByMGA(c.Request.Context(), country, c.Param("mga_code"))
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Tariffs By Postal Code
// @Description  Resolve tariffs for the grid area covering a postal code
// @Tags         power-tariffs
// @Produce      json
// @Param        country_code  path  string  true  "Country code"
// @Param        postal_code   path  int     true  "Postal code"
// @Success      200  {object}  DataResponse
// @Router       /power-tariffs/{country_code}/postal-code/{postal_code} [get]
func (s *Server) TariffsByPostalCode(c *gin.Context) {
	country, err := countryCode(c)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	postalCode, err := strconv.Atoi(c.Param("postal_code"))
	if err != nil {
		s.AbortWithError(c, apperr.Validation("postal_code", c.Param("postal_code")))
		return
	}

	resp, err := s.tariffSvc.GetByPostalCode(c.Request.Context(), country, postalCode)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Tariffs By Coordinates
// @Description  Resolve tariffs for the grid area at a coordinate
// @Tags         power-tariffs
// @Produce      json
// @Param        country_code  path  string  true  "Country code"
// @Param        lat           path  number  true  "Latitude"
// @Param        long          path  number  true  "Longitude"
// @Success      200  {object}  DataResponse
// @Router       /power-tariffs/{country_code}/lat/{lat}/long/{long} [get]
func (s *Server) TariffsByCoordinates(c *gin.Context) {
	country, err := countryCode(c)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		s.AbortWithError(c, apperr.Validation("lat", c.Param("lat")))
		return
	}
	lon, err := strconv.ParseFloat(c.Param("long"), 64)
	if err != nil {
		s.AbortWithError(c, apperr.Validation("long", c.Param("long")))
		return
	}

	resp, err := s.tariffSvc.GetByCoordinates(c.Request.Context(), country, lat, lon)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Tariffs By Address
// @Description  Resolve tariffs for the grid area covering an address
// @Tags         power-tariffs
// @Produce      json
// @Param        country_code  path  string  true  "Country code"
// @Param        address       path  string  true  "Street address"
// @Param        city          path  string  true  "City"
// @Success      200  {object}  DataResponse
// @Router       /power-tariffs/{country_code}/address/{address}/city/{city} [get]
func (s *Server) TariffsByAddress(c *gin.Context) {
	country, err := countryCode(c)
	if err != nil {
		s.AbortWithError(c, err)
		return
	}

	resp, err := s.tariffSvc.GetByAddress(c.Request.Context(),
		country, c.Param("address"), c.Param("city"))
	if err != nil {
		s.AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
