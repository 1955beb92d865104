package api

import (
	"net/http"

	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
)

type MixDogHandler struct {
	mixDogService *service.MixDogService
}

func NewMixDogHandler(mixDogService *service.MixDogService) *MixDogHandler {
	return &MixDogHandler{mixDogService: mixDogService}
}

// FindMix --> GET /api/mix-dogs/find?breed1=&breed2=
func (h *MixDogHandler) FindMix(c echo.Context) error {
	mix, err := h.mixDogService.FindMix(c.Request().Context(), c.QueryParam("breed1"), c.QueryParam("breed2"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, mix)
}
