package api

import (
	"net/http"

	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
)

type BreedHandler struct {
	breedService *service.BreedService
}

func NewBreedHandler(breedService *service.BreedService) *BreedHandler {
	return &BreedHandler{breedService: breedService}
}

// ListBreeds --> GET /api/breeds
func (h *BreedHandler) ListBreeds(c echo.Context) error {
	breeds, err := h.breedService.ListBreeds(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, breeds)
}

// SearchBreeds --> GET /api/breeds/search?query=
func (h *BreedHandler) SearchBreeds(c echo.Context) error {
	query, err := requiredQuery(c, "query")
	if err != nil {
		return respondError(c, err)
	}

	breeds, err := h.breedService.SearchBreeds(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, breeds)
}

// ListBreedsBySize --> GET /api/breeds/by-size?size=
func (h *BreedHandler) ListBreedsBySize(c echo.Context) error {
	breeds, err := h.breedService.ListBreedsBySize(c.Request().Context(), c.QueryParam("size"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, breeds)
}

// Health --> GET /api/health
func (h *BreedHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, h.breedService.HealthCheck())
}
