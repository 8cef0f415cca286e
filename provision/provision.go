// Package provision imports the n8n workflow definitions the service talks to
// and activates the ones that must be running.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrAlreadyExists is returned by Import when n8n already has the workflow.
var ErrAlreadyExists = errors.New("workflow already exists")

// Workflow is one definition file to import.
type Workflow struct {
	Name     string
	File     string
	Activate bool
}

// DefaultWorkflows are the definitions shipped with the service.
var DefaultWorkflows = []Workflow{
	{Name: "Frontend API Trigger", File: "Frontend API Trigger.json", Activate: true},
	{Name: "Main Workflow", File: "Main Workflow.json"},
	{Name: "Scheduled Scraper", File: "Scheduled Scraper.json", Activate: true},
}

// Provisioner talks to the n8n REST API.
type Provisioner struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func New(baseURL string, logger zerolog.Logger) *Provisioner {
	return &Provisioner{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With().Str("component", "provision").Logger(),
	}
}

type apiMessage struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Import posts the workflow definition at path and returns the new workflow id.
func (p *Provisioner) Import(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read workflow '%s': %w", path, err)
	}
	if !json.Valid(data) {
		return "", fmt.Errorf("workflow '%s' is not valid JSON", path)
	}

	var msg apiMessage
	status, err := p.call(ctx, http.MethodPost, p.baseURL+"/api/v1/workflows", data, &msg)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusBadRequest && strings.Contains(msg.Message, "already exists"):
		return "", ErrAlreadyExists
	case status < 200 || status > 299:
		return "", fmt.Errorf("import '%s': status code %d: %s", path, status, msg.Message)
	case msg.ID == "":
		return "", fmt.Errorf("import '%s': response carried no workflow id", path)
	}
	return msg.ID, nil
}

// Activate switches on the workflow with id.
func (p *Provisioner) Activate(ctx context.Context, id string) error {
	var msg apiMessage
	status, err := p.call(ctx, http.MethodPatch, fmt.Sprintf("%s/api/v1/workflows/%s/activate", p.baseURL, id), nil, &msg)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("activate %s: status code %d: %s", id, status, msg.Message)
	}
	return nil
}

func (p *Provisioner) call(ctx context.Context, method, url string, body []byte, out *apiMessage) (int, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s %s: read response: %w", method, url, err)
	}
	// Non-JSON bodies leave out empty; the status code still tells the story.
	_ = json.Unmarshal(raw, out)
	return resp.StatusCode, nil
}

// Report summarizes a provisioning run.
type Report struct {
	Imported  map[string]string
	Existing  []string
	Activated []string
	Failed    map[string]error
}

// Run imports every workflow from dir and activates those marked for it.
// Individual failures are logged and collected, never fatal.
func (p *Provisioner) Run(ctx context.Context, dir string, workflows []Workflow) Report {
	report := Report{Imported: map[string]string{}, Failed: map[string]error{}}

	for _, wf := range workflows {
		id, err := p.Import(ctx, filepath.Join(dir, wf.File))
		switch {
		case errors.Is(err, ErrAlreadyExists):
			p.logger.Warn().Str("workflow", wf.Name).Msg("Already exists")
			report.Existing = append(report.Existing, wf.Name)
			continue
		case err != nil:
			p.logger.Error().Err(err).Str("workflow", wf.Name).Msg("Failed to import")
			report.Failed[wf.Name] = err
			continue
		}
		p.logger.Info().Str("workflow", wf.Name).Str("id", id).Msg("Imported")
		report.Imported[wf.Name] = id
	}

	for _, wf := range workflows {
		id, ok := report.Imported[wf.Name]
		if !wf.Activate || !ok {
			continue
		}
		if err := p.Activate(ctx, id); err != nil {
			p.logger.Error().Err(err).Str("workflow", wf.Name).Msg("Failed to activate")
			report.Failed[wf.Name] = err
			continue
		}
		p.logger.Info().Str("workflow", wf.Name).Msg("Activated")
		report.Activated = append(report.Activated, wf.Name)
	}
	return report
}
