package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/config"
	"github.com/launchdarkly/diagnosis-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(status int, body interface{}) http.Handler {
	data, _ := json.Marshal(body)
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(status, headers, data)
}

func rawHandler(status int, body string) http.Handler {
	return httphelpers.HandlerWithResponse(status, nil, []byte(body))
}

func withClient(handler http.Handler, action func(*Client)) {
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		cfg := config.Default()
		cfg.BaseURL = server.URL
		cfg.Timeout = time.Second
		action(New(cfg, nil))
	})
}

func requireRequestError(t *testing.T, err error) *RequestError {
	require.Error(t, err)
	var re *RequestError
	require.True(t, errors.As(err, &re), "expected *RequestError, got %T", err)
	return re
}

func TestHealthSuccess(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		jsonHandler(200, servicedef.HealthResponse{Status: "healthy"}))
	withClient(handler, func(c *Client) {
		status, err := c.Health()
		require.NoError(t, err)
		assert.Equal(t, "healthy", status.Status)

		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, servicedef.HealthPath, r.Request.URL.Path)
	})
}

func TestHealthFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		withClient(jsonHandler(503, servicedef.HealthResponse{Status: "starting"}), func(c *Client) {
			_, err := c.Health()
			re := requireRequestError(t, err)
			assert.Equal(t, 503, re.StatusCode)
		})
	})

	t.Run("missing status property", func(t *testing.T) {
		withClient(rawHandler(200, `{"ok": true}`), func(c *Client) {
			_, err := c.Health()
			re := requireRequestError(t, err)
			assert.Equal(t, 0, re.StatusCode)
			assert.Contains(t, err.Error(), `"status"`)
		})
	})

	t.Run("broken connection", func(t *testing.T) {
		withClient(httphelpers.BrokenConnectionHandler(), func(c *Client) {
			_, err := c.Health()
			requireRequestError(t, err)
		})
	})
}

func TestHealthConnectionRefused(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()

	cfg := config.Default()
	cfg.BaseURL = url
	_, err := New(cfg, nil).Health()
	requireRequestError(t, err)
}

func TestHealthTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(200)
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		cfg := config.Default()
		cfg.BaseURL = server.URL
		cfg.Timeout = time.Millisecond * 50
		_, err := New(cfg, nil).Health()
		requireRequestError(t, err)
	})
}

func TestListSymptoms(t *testing.T) {
	withClient(jsonHandler(200, servicedef.SymptomsResponse{
		AvailableSymptoms: []string{"fiebre", "tos", "fatiga"},
	}), func(c *Client) {
		n, err := c.ListSymptoms()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	withClient(rawHandler(200, `{"available_symptoms": "fiebre"}`), func(c *Client) {
		_, err := c.ListSymptoms()
		requireRequestError(t, err)
	})
}

func TestDocumentation(t *testing.T) {
	withClient(rawHandler(200, `{"title": "API de Diagnóstico", "version": "1.0"}`), func(c *Client) {
		docs, err := c.Documentation()
		require.NoError(t, err)
		assert.Equal(t, "API de Diagnóstico", docs.Title)
	})

	withClient(httphelpers.HandlerWithStatus(404), func(c *Client) {
		_, err := c.Documentation()
		assert.Equal(t, 404, requireRequestError(t, err).StatusCode)
	})
}

func TestPredictSendsProfileAndParsesResult(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(jsonHandler(200, servicedef.PredictResponse{
		Diagnosis:  cases.CategoryMild,
		Confidence: 0.875,
	}))
	withClient(handler, func(c *Client) {
		result, err := c.Predict(cases.SymptomProfile{"fiebre": 6, "tos": 5})
		require.NoError(t, err)
		assert.Equal(t, PredictionResult{Category: cases.CategoryMild, Confidence: 0.875}, result)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, servicedef.PredictPath, r.Request.URL.Path)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Request.Header.Get(servicedef.RequestIDHeader))
		assert.JSONEq(t, `{"fiebre": 6, "tos": 5}`, string(r.Body))
	})
}

func TestPredictSubstitutesSentinelsForMissingFields(t *testing.T) {
	for _, body := range []string{`{}`, `{"diagnosis": 3, "confidence": "high"}`, `not json`} {
		t.Run(body, func(t *testing.T) {
			withClient(rawHandler(200, body), func(c *Client) {
				result, err := c.Predict(cases.SymptomProfile{"tos": 1})
				require.NoError(t, err)
				assert.Equal(t, "ERROR", result.Category)
				assert.Equal(t, 0.0, result.Confidence)
			})
		})
	}
}

func TestPredictPassesThroughOutOfRangeConfidence(t *testing.T) {
	withClient(rawHandler(200, `{"diagnosis": "NO_ENFERMO", "confidence": 1.7}`), func(c *Client) {
		result, err := c.Predict(cases.SymptomProfile{})
		require.NoError(t, err)
		assert.Equal(t, 1.7, result.Confidence)
	})
}

func TestPredictErrorStatus(t *testing.T) {
	withClient(rawHandler(400, `{"error": "no symptoms"}`), func(c *Client) {
		_, err := c.Predict(cases.SymptomProfile{})
		re := requireRequestError(t, err)
		assert.Equal(t, 400, re.StatusCode)
		assert.Equal(t, `POST /predict returned HTTP status 400: {"error": "no symptoms"}`, err.Error())
	})
}

func TestCheckErrorHandling(t *testing.T) {
	goodService := httphelpers.HandlerForPath(servicedef.PredictPath, httphelpers.HandlerWithStatus(400),
		httphelpers.HandlerWithStatus(404))
	withClient(goodService, func(c *Client) {
		assert.NoError(t, c.CheckErrorHandling())
	})

	lenientService := httphelpers.HandlerWithStatus(200)
	withClient(lenientService, func(c *Client) {
		err := c.CheckErrorHandling()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected HTTP status 400")
		assert.Contains(t, err.Error(), "expected HTTP status 404")
	})
}

func TestCheckErrorHandlingMakesBothRequestsWhenFirstIsWrong(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(404))
	withClient(handler, func(c *Client) {
		err := c.CheckErrorHandling()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected HTTP status 400 from POST /predict, got 404")
		assert.NotContains(t, err.Error(), "/nonexistent")
	})

	require.Len(t, requestsCh, 2)
	assert.Equal(t, servicedef.PredictPath, (<-requestsCh).Request.URL.Path)
	assert.Equal(t, servicedef.UnknownPath, (<-requestsCh).Request.URL.Path)
}
