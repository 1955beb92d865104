package entity

// Prediction is one breed guess returned by the image classifier, reshaped for the app.
type Prediction struct {
	NameEn     string  `json:"nameEn"`
	NameKo     string  `json:"nameKo"`
	Confidence float64 `json:"confidence"`
	ImageURL   string  `json:"imageUrl"`
}
