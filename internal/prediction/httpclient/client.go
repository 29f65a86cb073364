// Package httpclient calls the remote injury prediction service over JSON/HTTP.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/injuryrisk/internal/prediction"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseBytes bounds how much of a success body is decoded.
const maxResponseBytes = 1 << 20

type requestBody struct {
	PlayerAge         float64 `json:"Player_Age"`
	PlayerWeight      float64 `json:"Player_Weight"`
	PlayerHeight      float64 `json:"Player_Height"`
	PreviousInjuries  int     `json:"Previous_Injuries"`
	TrainingIntensity string  `json:"Training_Intensity"`
}

type responseBody struct {
	LikelihoodOfInjury *string  `json:"likelihood_of_injury"`
	RecoveryTimeDays   *float64 `json:"recovery_time_days"`
}

// Client posts player attributes to a prediction endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is used
// as-is, without tracing instrumentation.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout caps each exchange. Zero keeps the transport defaults.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New validates the endpoint and returns a client.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("prediction endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse prediction endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("prediction endpoint %q must use http or https", endpoint)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("prediction endpoint %q has no host", endpoint)
	}

	c := &Client{
		endpoint: parsed.String(),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Endpoint returns the configured prediction URL.
func (c *Client) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.endpoint
}

// Predict sends one prediction request.
func (c *Client) Predict(ctx context.Context, req prediction.Request) (prediction.Result, error) {
	if c == nil || c.httpClient == nil {
		return prediction.Result{}, prediction.TransportError(errors.New("prediction client is not configured"))
	}
	payload, err := json.Marshal(requestBody{
		PlayerAge:         req.Age,
		PlayerWeight:      req.WeightKg,
		PlayerHeight:      req.HeightCm,
		PreviousInjuries:  req.PreviousInjuries,
		TrainingIntensity: string(req.TrainingIntensity),
	})
	if err != nil {
		return prediction.Result{}, prediction.TransportError(fmt.Errorf("marshal prediction request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return prediction.Result{}, prediction.TransportError(fmt.Errorf("create prediction request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return prediction.Result{}, prediction.TransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return prediction.Result{}, prediction.ServerError(resp.StatusCode)
	}

	return decodeResult(io.LimitReader(resp.Body, maxResponseBytes))
}

func decodeResult(r io.Reader) (prediction.Result, error) {
	var body responseBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return prediction.Result{}, prediction.MalformedResponseError(fmt.Errorf("decode body: %w", err))
	}
	if body.LikelihoodOfInjury == nil {
		return prediction.Result{}, prediction.MalformedResponseError(errors.New("likelihood_of_injury is missing"))
	}
	likelihood := prediction.Likelihood(*body.LikelihoodOfInjury)
	if !likelihood.Valid() {
		return prediction.Result{}, prediction.MalformedResponseError(fmt.Errorf("unexpected likelihood_of_injury %q", *body.LikelihoodOfInjury))
	}
	if body.RecoveryTimeDays == nil {
		return prediction.Result{}, prediction.MalformedResponseError(errors.New("recovery_time_days is missing"))
	}
	days := *body.RecoveryTimeDays
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return prediction.Result{}, prediction.MalformedResponseError(errors.New("recovery_time_days is not finite"))
	}
	return prediction.Result{InjuryLikelihood: likelihood, RecoveryTimeDays: days}, nil
}
