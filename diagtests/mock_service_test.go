package diagtests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/launchdarkly/diagnosis-contract-tests/client"
	"github.com/launchdarkly/diagnosis-contract-tests/config"
	"github.com/launchdarkly/diagnosis-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
)

func jsonResponse(body interface{}) http.Handler {
	data, _ := json.Marshal(body)
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(200, headers, data)
}

// mockDiagnosisService behaves like the real service's HTTP API. Each prediction request with a
// non-empty profile gets the next of the given diagnoses; after the last one, it keeps returning
// the last one.
func mockDiagnosisService(healthy bool, diagnoses ...string) http.Handler {
	var answers []http.Handler
	for _, d := range diagnoses {
		answers = append(answers, jsonResponse(servicedef.PredictResponse{Diagnosis: d, Confidence: 0.8}))
	}
	if len(answers) == 0 {
		answers = append(answers, httphelpers.HandlerWithStatus(500))
	}
	predictions := httphelpers.SequentialHandler(answers[0], answers[1:]...)

	predict := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "{}" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		predictions.ServeHTTP(w, r)
	})

	health := jsonResponse(servicedef.HealthResponse{Status: "healthy"})
	if !healthy {
		health = httphelpers.HandlerWithStatus(503)
	}

	return httphelpers.HandlerForPath(servicedef.HealthPath, health,
		httphelpers.HandlerForPath(servicedef.SymptomsPath,
			jsonResponse(servicedef.SymptomsResponse{AvailableSymptoms: []string{"fiebre", "tos", "dolor_pecho"}}),
			httphelpers.HandlerForPath(servicedef.DocsPath,
				jsonResponse(servicedef.DocsResponse{Title: "API de Diagnóstico Médico"}),
				httphelpers.HandlerForPath(servicedef.PredictPath, predict, httphelpers.HandlerWithStatus(404)))))
}

func newClientForServer(server *httptest.Server) *client.Client {
	cfg := config.Default()
	cfg.BaseURL = server.URL
	cfg.Timeout = time.Second * 5
	cfg.CaseDelay = 0
	return client.New(cfg, nil)
}
