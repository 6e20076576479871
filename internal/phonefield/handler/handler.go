package handler

import (
	"fmt"
	"net/http"

	"phonefield/internal/countries"
	"phonefield/internal/phonefield/service"
	"phonefield/internal/phonefield/transport"
	"phonefield/platform/httpkit"
	"phonefield/platform/sanitize"
	"phonefield/platform/validator"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the country catalog and phone fields.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new phone field handler and registers the countrycode rule.
func New(svc *service.Service, val *validator.Validator) (*Handler, error) {
	if err := val.RegisterValidation("countrycode", isCountryCode); err != nil {
		return nil, fmt.Errorf("register countrycode validation: %w", err)
	}
	return &Handler{svc: svc, val: val}, nil
}

func isCountryCode(fl playground.FieldLevel) bool {
	return countries.IsKnownCode(fl.Field().String())
}

// RegisterRoutes mounts the handler on a route group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cs := rg.Group("/countries")
	cs.GET("", h.ListCountries)
	cs.GET("/locale", h.CountryForLocale)
	cs.GET("/detect", h.DetectCountry)
	cs.GET("/:code", h.GetCountry)

	ph := rg.Group("/phone")
	ph.POST("", h.Create)
	ph.POST("/derive", h.Derive)
	ph.POST("/select", h.SelectCountry)
	ph.POST("/mask", h.Mask)
}

// ListCountries lists the catalog, optionally filtered.
// GET /api/v1/countries?allowed=ke,%2B256,%2B255
func (h *Handler) ListCountries(c *gin.Context) {
	var req transport.ListCountriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	httpkit.OK(c, h.svc.ListCountries(sanitize.Text(req.Allowed)))
}

// GetCountry returns a single catalog entry.
// GET /api/v1/countries/:code
func (h *Handler) GetCountry(c *gin.Context) {
	result, err := h.svc.GetCountry(c.Param("code"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CountryForLocale resolves a locale tag to a country.
// GET /api/v1/countries/locale?tag=en-KE
func (h *Handler) CountryForLocale(c *gin.Context) {
	var req transport.LocaleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	httpkit.OK(c, h.svc.CountryForLocale(sanitize.Text(req.Tag)))
}

// DetectCountry resolves the country of an international number.
// GET /api/v1/countries/detect?number=%2B254712345678
func (h *Handler) DetectCountry(c *gin.Context) {
	var req transport.DetectRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.DetectCountry(sanitize.Text(req.Number))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create builds a new phone field.
// POST /api/v1/phone
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateRequest
	if !h.bind(c, &req) {
		return
	}
	req.Locale = sanitize.Text(req.Locale)
	req.AllowedCountries = sanitizeList(req.AllowedCountries)

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Derive returns every derived value of a snapshot.
// POST /api/v1/phone/derive
func (h *Handler) Derive(c *gin.Context) {
	var req transport.DeriveRequest
	if !h.bind(c, &req) {
		return
	}
	req.Snapshot.AllowedCountries = sanitizeList(req.Snapshot.AllowedCountries)
	req.Candidate = sanitize.TextPtr(req.Candidate)

	result, err := h.svc.Derive(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SelectCountry changes the selected country of a snapshot.
// POST /api/v1/phone/select
func (h *Handler) SelectCountry(c *gin.Context) {
	var req transport.SelectCountryRequest
	if !h.bind(c, &req) {
		return
	}
	req.Snapshot.AllowedCountries = sanitizeList(req.Snapshot.AllowedCountries)

	result, err := h.svc.SelectCountry(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Mask formats raw text with a country's display mask.
// POST /api/v1/phone/mask
func (h *Handler) Mask(c *gin.Context) {
	var req transport.MaskRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Mask(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// bind decodes and validates a JSON body, writing the 400 response itself.
func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func sanitizeList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = sanitize.Text(item)
	}
	return out
}
