package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"deepbark-service/internal/entity"
)

const (
	classifyPath     = "/classify"
	imageFormField   = "image"
	imageAssetPrefix = "assets/images/"
	imageAssetSuffix = ".jpg"
)

// ClassifierService forwards images to the external breed classifier and reshapes its predictions.
type ClassifierService struct {
	classifierURL string
	client        *http.Client
}

// NewClassifierService creates a ClassifierService. A nil client means http.DefaultClient.
func NewClassifierService(classifierURL string, client *http.Client) *ClassifierService {
	if client == nil {
		client = http.DefaultClient
	}
	return &ClassifierService{
		classifierURL: strings.TrimRight(classifierURL, "/"),
		client:        client,
	}
}

type classifyResponse struct {
	Predictions *[]classifyPrediction `json:"predictions"`
	Error       string                `json:"error"`
}

type classifyPrediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// AnalyzeImage uploads the image and returns the classifier's predictions in the order it ranked them.
// Transport failures, non-2xx answers and malformed bodies are reported as ErrUpstream.
func (s *ClassifierService) AnalyzeImage(ctx context.Context, image io.Reader, filename string) ([]entity.Prediction, error) {
	body, contentType, err := multipartImage(image, filename)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.classifierURL+classifyPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("Error calling classifier")
		return nil, upstreamError("could not reach the classification service", err)
	}
	defer resp.Body.Close()

	var result classifyResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("classification service returned status %d", resp.StatusCode)
		if decodeErr == nil && result.Error != "" {
			msg += ": " + result.Error
		}
		logger.Warn().Int("status", resp.StatusCode).Msg("Classifier rejected image")
		return nil, upstreamError(msg, nil)
	}
	if decodeErr != nil {
		return nil, upstreamError("classification service returned an unreadable response", decodeErr)
	}
	if result.Predictions == nil {
		return nil, upstreamError("classification service response has no predictions", nil)
	}

	predictions := make([]entity.Prediction, 0, len(*result.Predictions))
	for i, p := range *result.Predictions {
		if p.Class == "" {
			return nil, upstreamError(fmt.Sprintf("prediction %d has no class label", i), nil)
		}
		predictions = append(predictions, toPrediction(p))
	}

	logger.Info().Str("filename", filename).Int("predictions", len(predictions)).Msg("Image analyzed")
	return predictions, nil
}

func toPrediction(p classifyPrediction) entity.Prediction {
	return entity.Prediction{
		NameEn:     p.Class,
		NameKo:     KoreanName(p.Class),
		Confidence: p.Confidence,
		ImageURL:   imageAssetPrefix + strings.ToLower(p.Class) + imageAssetSuffix,
	}
}

func multipartImage(image io.Reader, filename string) (*bytes.Buffer, string, error) {
	if filename == "" {
		filename = "image"
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(imageFormField, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, "", fmt.Errorf("could not read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func upstreamError(message string, cause error) *Error {
	return &Error{Kind: ErrUpstream, Message: message, Cause: cause}
}
