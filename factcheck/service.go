package factcheck

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"truthonly/models"
	"truthonly/validation"

	"github.com/rs/zerolog"
)

// ErrInvalidInput wraps submissions that fail input validation.
var ErrInvalidInput = errors.New("invalid input")

// Remote is the verification backend tried first.
type Remote interface {
	Submit(ctx context.Context, req models.VerificationRequest) (models.VerificationResult, error)
}

// Fallback produces a result locally when Remote fails.
type Fallback interface {
	Generate(t models.InputType, content string) models.VerificationResult
}

// HistoryRecorder keeps the recent-checks list.
type HistoryRecorder interface {
	Record(ctx context.Context, entry models.RecentCheckEntry) error
}

// Recorder stores completed checks.
type Recorder interface {
	Save(ctx context.Context, req models.VerificationRequest, result models.VerificationResult) (*models.VerificationRecord, error)
}

// Outcome is what a finished check hands back to its caller.
type Outcome struct {
	RecordID string                     `json:"id,omitempty"`
	Request  models.VerificationRequest `json:"request"`
	Result   models.VerificationResult  `json:"result"`
}

// Service runs a validated request through the remote workflow, falling back
// to the local generator, and records it.
type Service struct {
	remote   Remote
	fallback Fallback
	history  HistoryRecorder
	records  Recorder
	logger   zerolog.Logger
	now      func() time.Time

	// lastEntryID keeps recent-check ids unique when checks share a millisecond.
	lastEntryID atomic.Int64
}

// NewService wires the pipeline. history and records may be nil.
func NewService(remote Remote, fallback Fallback, history HistoryRecorder, records Recorder, logger zerolog.Logger) *Service {
	return &Service{
		remote:   remote,
		fallback: fallback,
		history:  history,
		records:  records,
		logger:   logger.With().Str("component", "factcheck").Logger(),
		now:      time.Now,
	}
}

// Check verifies one request. Only invalid input is reported as an error;
// remote and storage failures degrade to a fallback result or a missing record.
func (s *Service) Check(ctx context.Context, req models.VerificationRequest) (Outcome, error) {
	if status := validation.ValidateRequest(req); !status.Valid() {
		if status == validation.StatusEmpty {
			return Outcome{}, fmt.Errorf("%w: input is empty", ErrInvalidInput)
		}
		return Outcome{}, fmt.Errorf("%w: %s", ErrInvalidInput, status)
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = s.now().UTC()
	}

	if s.history != nil {
		now := s.now()
		entry := NewRecentEntry(req, now)
		entry.ID = s.nextEntryID(now)
		if err := s.history.Record(ctx, entry); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to record recent check")
		}
	}

	result, err := s.remote.Submit(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("input_type", string(req.InputType)).Msg("Remote verification failed, using fallback")
		result = s.fallback.Generate(req.InputType, req.Subject())
	}
	result = result.Normalize()

	out := Outcome{Request: req, Result: result}
	if s.records != nil {
		record, err := s.records.Save(ctx, req, result)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to persist verification record")
		} else {
			out.RecordID = record.ID
		}
	}

	s.logger.Info().
		Str("input_type", string(req.InputType)).
		Str("origin", string(result.Origin)).
		Bool("verdict", result.IsTrue).
		Int("confidence", result.Confidence).
		Msg("Fact check complete")
	return out, nil
}

// nextEntryID returns now in unix millis, bumped past the last id handed out.
func (s *Service) nextEntryID(now time.Time) int64 {
	for {
		last := s.lastEntryID.Load()
		id := max(now.UnixMilli(), last+1)
		if s.lastEntryID.CompareAndSwap(last, id) {
			return id
		}
	}
}

// NewRecentEntry builds the history line for req. Images are listed by file name.
func NewRecentEntry(req models.VerificationRequest, now time.Time) models.RecentCheckEntry {
	content := req.Content
	if req.InputType == models.InputImage {
		content = req.FileName
	}
	return models.RecentCheckEntry{
		ID:        now.UnixMilli(),
		Type:      req.InputType,
		Content:   content,
		Timestamp: now.UTC(),
	}
}
