// Package factcheck runs the verification pipeline: the remote workflow
// client, the local fallback classifier, and the service tying both to history.
package factcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"truthonly/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single webhook call.
const DefaultTimeout = 30 * time.Second

// DefaultWebhookURL is the local n8n "Frontend API Trigger" webhook.
const DefaultWebhookURL = "http://localhost:5678/webhook/400c39a2-1bf7-4ffa-bafe-02a3888db41c"

const (
	nonURLLink       = "user-submitted"
	maxResponseBytes = 1 << 20
	isoTimestamp     = "2006-01-02T15:04:05.000Z07:00"
)

// ErrVerificationFailed is returned for every failed webhook attempt.
var ErrVerificationFailed = errors.New("failed to process fact-check request")

// Payload is the JSON body posted to the webhook.
type Payload struct {
	Title          string `json:"title"`
	ContentSnippet string `json:"contentSnippet"`
	Link           string `json:"link"`
	InputType      string `json:"inputType"`
	Timestamp      string `json:"timestamp"`
}

type webhookResponse struct {
	Classification string `json:"classification"`
	Reason         string `json:"reason"`
}

// Client posts requests to the remote fact-check workflow.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient builds a client for endpoint. A non-positive timeout selects DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "webhook").Logger(),
	}
}

// Endpoint returns the configured webhook URL.
func (c *Client) Endpoint() string { return c.endpoint }

// BuildPayload normalizes a request into the webhook transport shape.
func BuildPayload(req models.VerificationRequest) Payload {
	p := Payload{
		Title:          titleFor(req.InputType),
		ContentSnippet: req.Content,
		Link:           nonURLLink,
		InputType:      string(req.InputType),
		Timestamp:      req.Timestamp.UTC().Format(isoTimestamp),
	}
	if req.InputType == models.InputURL {
		p.Link = strings.TrimSpace(req.Content)
	}
	return p
}

func titleFor(t models.InputType) string {
	switch t {
	case models.InputURL:
		return "URL Verification"
	case models.InputText:
		return "Text Verification"
	case models.InputImage:
		return "Image Verification"
	default:
		return "User Submitted Content"
	}
}

// Submit performs one webhook call. Any failure is reported as ErrVerificationFailed;
// the caller decides what to fall back to.
func (c *Client) Submit(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error) {
	body, err := json.Marshal(BuildPayload(req))
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("%w: encode payload: %v", ErrVerificationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	requestID := uuid.New().String()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Str("request_id", requestID).Msg("Webhook call failed")
		return models.VerificationResult{}, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("request_id", requestID).Msg("Webhook returned error status")
		return models.VerificationResult{}, fmt.Errorf("%w: status code %d", ErrVerificationFailed, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.VerificationResult{}, fmt.Errorf("%w: read response: %v", ErrVerificationFailed, err)
	}
	var decoded webhookResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.logger.Warn().Err(err).Str("request_id", requestID).Msg("Webhook returned undecodable body")
		return models.VerificationResult{}, fmt.Errorf("%w: decode response: %v", ErrVerificationFailed, err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("classification", decoded.Classification).
		Dur("elapsed", time.Since(start)).
		Msg("Webhook responded")
	return ParseResponse(decoded.Classification, decoded.Reason), nil
}

// ParseResponse maps the workflow's classification onto a result.
// A missing classification yields a fixed low-confidence Unverified result;
// an unrecognized one is treated as Unverified with the raw label kept in the reason.
func ParseResponse(classification, reason string) models.VerificationResult {
	if classification == "" {
		return models.VerificationResult{
			IsTrue:         false,
			Confidence:     50,
			Classification: models.ClassUnverified,
			Reason:         "Unable to verify information",
			Sources:        []models.Source{models.FallbackSource},
			Origin:         models.OriginRemote,
		}
	}

	class, known := canonicalClassification(classification)
	if !known && reason == "" {
		reason = fmt.Sprintf("Unrecognized classification %q", classification)
	}
	return models.VerificationResult{
		IsTrue:         class == models.ClassVerified,
		Confidence:     confidenceFor(class),
		Classification: class,
		Reason:         reason,
		Sources:        cloneSources(remoteBaseSources, remoteClassSources[class]...),
		Origin:         models.OriginRemote,
	}.Normalize()
}

func canonicalClassification(s string) (models.Classification, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(s), "")) {
	case "verified":
		return models.ClassVerified, true
	case "potentialmisinformation":
		return models.ClassPotentialMisinformation, true
	case "unverified":
		return models.ClassUnverified, true
	default:
		return models.ClassUnverified, false
	}
}

func confidenceFor(c models.Classification) int {
	switch c {
	case models.ClassVerified:
		return 85
	case models.ClassPotentialMisinformation:
		return 20
	default:
		return 50
	}
}
