package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeN8N accepts imports by workflow name and records activations.
type fakeN8N struct {
	mu        sync.Mutex
	existing  map[string]bool
	activated []string
	next      int
}

func (f *fakeN8N) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/v1/workflows":
		var wf struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&wf)
		if f.existing[wf.Name] {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"message":"Workflow %s already exists"}`, wf.Name)
			return
		}
		f.next++
		fmt.Fprintf(w, `{"id":"wf-%d","name":%q}`, f.next, wf.Name)
	case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/activate"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/workflows/"), "/activate")
		f.activated = append(f.activated, id)
		fmt.Fprint(w, `{}`)
	default:
		http.NotFound(w, r)
	}
}

func writeWorkflows(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		body := fmt.Sprintf(`{"name":%q,"nodes":[],"connections":{}}`, n)
		require.NoError(t, os.WriteFile(filepath.Join(dir, n+".json"), []byte(body), 0644))
	}
	return dir
}

func TestRunImportsAndActivates(t *testing.T) {
	fake := &fakeN8N{existing: map[string]bool{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	dir := writeWorkflows(t, "Frontend API Trigger", "Main Workflow", "Scheduled Scraper")
	report := New(srv.URL+"/", zerolog.Nop()).Run(context.Background(), dir, DefaultWorkflows)

	assert.Len(t, report.Imported, 3)
	assert.Empty(t, report.Failed)
	assert.Equal(t, []string{"Frontend API Trigger", "Scheduled Scraper"}, report.Activated)
	assert.ElementsMatch(t, []string{report.Imported["Frontend API Trigger"], report.Imported["Scheduled Scraper"]}, fake.activated)
}

func TestRunSkipsExisting(t *testing.T) {
	fake := &fakeN8N{existing: map[string]bool{"Frontend API Trigger": true}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	dir := writeWorkflows(t, "Frontend API Trigger", "Main Workflow", "Scheduled Scraper")
	report := New(srv.URL, zerolog.Nop()).Run(context.Background(), dir, DefaultWorkflows)

	assert.Equal(t, []string{"Frontend API Trigger"}, report.Existing)
	assert.Equal(t, []string{"Scheduled Scraper"}, report.Activated)
	assert.Len(t, fake.activated, 1)
}

func TestRunCollectsFailures(t *testing.T) {
	fake := &fakeN8N{existing: map[string]bool{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	dir := writeWorkflows(t, "Main Workflow")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Scheduled Scraper.json"), []byte("{broken"), 0644))

	report := New(srv.URL, zerolog.Nop()).Run(context.Background(), dir, DefaultWorkflows)
	assert.Contains(t, report.Failed, "Frontend API Trigger", "missing file")
	assert.Contains(t, report.Failed, "Scheduled Scraper", "invalid JSON")
	assert.Contains(t, report.Imported, "Main Workflow")
	assert.Empty(t, report.Activated)
}

func TestImportUnreachable(t *testing.T) {
	dir := writeWorkflows(t, "Main Workflow")
	_, err := New("http://127.0.0.1:1", zerolog.Nop()).Import(context.Background(), filepath.Join(dir, "Main Workflow.json"))
	require.Error(t, err)
}
