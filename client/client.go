// Package client talks to the diagnosis service over HTTP.
//
// Every operation makes exactly one attempt, bounded by the configured timeout. There are no
// retries; a timeout, a refused connection, and an unexpected status code all surface the same
// way, as a *RequestError.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/launchdarkly/diagnosis-contract-tests/cases"
	"github.com/launchdarkly/diagnosis-contract-tests/config"
	"github.com/launchdarkly/diagnosis-contract-tests/framework"
	"github.com/launchdarkly/diagnosis-contract-tests/servicedef"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Client is a typed view of the diagnosis service's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  framework.Logger
}

// HealthStatus is the status string reported by a successful health check.
type HealthStatus struct {
	Status string
}

// DocsInfo is what the harness checks in the service's API documentation resource.
type DocsInfo struct {
	Title string
}

// PredictionResult is the service's answer for one symptom profile. Confidence is passed
// through as reported, even if it is outside [0, 1].
type PredictionResult struct {
	Category   string
	Confidence float64
}

// RequestError describes an operation that did not succeed. StatusCode is zero if no HTTP
// response was received.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("%s %s returned HTTP status %d", e.Method, e.Path, e.StatusCode)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// New creates a Client for cfg.BaseURL whose calls each time out after cfg.Timeout.
func New(cfg config.Config, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// WithLogger returns a Client that shares this one's connection settings but logs its requests
// and responses to logger instead.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	ret := *c
	ret.logger = logger
	return &ret
}

// BaseURL returns the service address this client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health queries the liveness resource. It succeeds only for a 200 response whose JSON body
// has a string status property.
func (c *Client) Health() (HealthStatus, error) {
	body, err := c.do("GET", servicedef.HealthPath, nil, nil)
	if err != nil {
		return HealthStatus{}, err
	}
	status := body.GetByKey(servicedef.HealthStatusProperty)
	if !status.IsString() {
		return HealthStatus{}, c.malformed("GET", servicedef.HealthPath, servicedef.HealthStatusProperty, body)
	}
	return HealthStatus{Status: status.StringValue()}, nil
}

// ListSymptoms returns the number of symptoms the service says it understands.
func (c *Client) ListSymptoms() (int, error) {
	body, err := c.do("GET", servicedef.SymptomsPath, nil, nil)
	if err != nil {
		return 0, err
	}
	symptoms := body.GetByKey(servicedef.AvailableSymptomsProperty)
	if symptoms.Type() != ldvalue.ArrayType {
		return 0, c.malformed("GET", servicedef.SymptomsPath, servicedef.AvailableSymptomsProperty, body)
	}
	return symptoms.Count(), nil
}

// Documentation checks that the API documentation resource exists and returns its title.
func (c *Client) Documentation() (DocsInfo, error) {
	body, err := c.do("GET", servicedef.DocsPath, nil, nil)
	if err != nil {
		return DocsInfo{}, err
	}
	title := body.GetByKey(servicedef.DocsTitleProperty)
	if !title.IsString() {
		return DocsInfo{}, c.malformed("GET", servicedef.DocsPath, servicedef.DocsTitleProperty, body)
	}
	return DocsInfo{Title: title.StringValue()}, nil
}

// Predict asks the service to classify a symptom profile.
//
// A 200 response is always mapped to a result: a missing or non-string diagnosis becomes
// "ERROR", and a missing or non-numeric confidence becomes 0. Any other status, or a transport
// failure, is returned as an error.
func (c *Client) Predict(profile cases.SymptomProfile) (PredictionResult, error) {
	data, err := json.Marshal(servicedef.PredictParams(profile))
	if err != nil {
		return PredictionResult{}, err
	}
	headers := make(http.Header)
	headers.Set(servicedef.RequestIDHeader, uuid.NewString())
	body, err := c.do("POST", servicedef.PredictPath, data, headers)
	if err != nil {
		return PredictionResult{}, err
	}
	result := PredictionResult{
		Category:   servicedef.MissingDiagnosis,
		Confidence: servicedef.MissingConfidence,
	}
	if d := body.GetByKey(servicedef.DiagnosisProperty); d.IsString() {
		result.Category = d.StringValue()
	}
	if conf := body.GetByKey(servicedef.ConfidenceProperty); conf.IsNumber() {
		result.Confidence = conf.Float64Value()
	}
	return result, nil
}

// CheckErrorHandling verifies that the service rejects an empty prediction request with a 400
// and an unknown route with a 404. Both requests are always made; if both are wrong, both
// errors are reported.
func (c *Client) CheckErrorHandling() error {
	return errors.Join(
		c.expectStatus("POST", servicedef.PredictPath, []byte("{}"), http.StatusBadRequest),
		c.expectStatus("GET", servicedef.UnknownPath, nil, http.StatusNotFound),
	)
}

func (c *Client) expectStatus(method, path string, body []byte, expected int) error {
	resp, _, err := c.send(method, path, body, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != expected {
		return fmt.Errorf("expected HTTP status %d from %s %s, got %d", expected, method, path, resp.StatusCode)
	}
	c.logger.Printf("%s %s correctly returned %d", method, path, expected)
	return nil
}

// do sends a request and requires a 200 response with a body, which it parses as JSON. A body
// that is not valid JSON parses as a null value, so property lookups on it find nothing.
func (c *Client) do(method, path string, body []byte, headers http.Header) (ldvalue.Value, error) {
	resp, respData, err := c.send(method, path, body, headers)
	if err != nil {
		return ldvalue.Null(), err
	}
	if resp.StatusCode != http.StatusOK {
		return ldvalue.Null(), &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respData),
		}
	}
	return ldvalue.Parse(respData), nil
}

func (c *Client) send(method, path string, body []byte, headers http.Header) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, &RequestError{Method: method, Path: path, Err: err}
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		c.logger.Printf("%s %s %s", method, path, string(body))
	} else {
		c.logger.Printf("%s %s", method, path)
	}

	startTime := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("%s %s failed after %s: %s", method, path, time.Since(startTime), err)
		return nil, nil, &RequestError{Method: method, Path: path, Err: err}
	}
	respData, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, nil, &RequestError{Method: method, Path: path, Err: err}
	}
	c.logger.Printf("%s %s returned %d in %s: %s", method, path, resp.StatusCode, time.Since(startTime), string(respData))
	return resp, respData, nil
}

func (c *Client) malformed(method, path, property string, body ldvalue.Value) error {
	return &RequestError{
		Method: method,
		Path:   path,
		Err:    fmt.Errorf("response did not contain a valid %q property: %s", property, body.JSONString()),
	}
}
