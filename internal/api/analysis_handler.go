package api

import (
	"net/http"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/metrics"
	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
)

type AnalysisHandler struct {
	classifier *service.ClassifierService
}

func NewAnalysisHandler(classifier *service.ClassifierService) *AnalysisHandler {
	return &AnalysisHandler{classifier: classifier}
}

type analysisResponse struct {
	Predictions []entity.Prediction `json:"predictions"`
}

// AnalyzeImage forwards the uploaded photo to the classifier --> POST /api/analyze
func (h *AnalysisHandler) AnalyzeImage(c echo.Context) error {
	header, err := c.FormFile("image")
	if err != nil {
		return respondError(c, &service.Error{Kind: service.ErrValidation, Message: "image file is required"})
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, &service.Error{Kind: service.ErrValidation, Message: "could not read uploaded image"})
	}
	defer file.Close()

	predictions, err := h.classifier.AnalyzeImage(c.Request().Context(), file, header.Filename)
	if err != nil {
		metrics.ObserveClassification("error", "")
		return respondError(c, err)
	}

	metrics.ObserveClassification("ok", breedLabel(predictions))

	return c.JSON(http.StatusOK, analysisResponse{Predictions: predictions})
}

// breedLabel keeps the metric's label set bounded to the trained classes.
func breedLabel(predictions []entity.Prediction) string {
	if len(predictions) == 0 {
		return ""
	}
	if !service.KnownBreed(predictions[0].NameEn) {
		return "other"
	}
	return predictions[0].NameEn
}
