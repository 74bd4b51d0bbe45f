// Package servicedef describes the HTTP API of the diagnosis service as seen by the harness.
package servicedef

const (
	HealthPath   = "/health"
	SymptomsPath = "/symptoms"
	DocsPath     = "/api/docs"
	PredictPath  = "/predict"

	// UnknownPath is requested by the error-handling probe, which expects a 404 for it.
	UnknownPath = "/nonexistent"

	RequestIDHeader = "X-Request-Id"
)

// Property names in the service's JSON responses.
const (
	HealthStatusProperty      = "status"
	AvailableSymptomsProperty = "available_symptoms"
	DocsTitleProperty         = "title"
	DiagnosisProperty         = "diagnosis"
	ConfidenceProperty        = "confidence"
)

// Sentinel values substituted for missing fields in an otherwise successful prediction.
const (
	MissingDiagnosis  = "ERROR"
	MissingConfidence = 0.0
)

// PredictParams is the request body for PredictPath: symptom name to severity.
type PredictParams map[string]int

// HealthResponse is the body of a successful HealthPath response.
type HealthResponse struct {
	Status string `json:"status"`
}

// SymptomsResponse is the body of a successful SymptomsPath response.
type SymptomsResponse struct {
	AvailableSymptoms []string `json:"available_symptoms"`
}

// DocsResponse is the body of a successful DocsPath response. The service may include other
// properties, which the harness ignores.
type DocsResponse struct {
	Title string `json:"title"`
}

// PredictResponse is the body of a successful PredictPath response.
type PredictResponse struct {
	Diagnosis  string  `json:"diagnosis"`
	Confidence float64 `json:"confidence"`
}
