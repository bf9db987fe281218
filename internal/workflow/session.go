package workflow

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"canpulse/internal/config"
	"canpulse/internal/dataset"
	"canpulse/pkg/contracts/domain"
)

// Store is the subset of the tabular store the session writes to
type Store interface {
	SaveTable(name string, t *dataset.Table) error
	Delete(name string) (bool, error)
}

// ImportResult describes a successfully imported dataset
type ImportResult struct {
	Message string           `json:"message"`
	Logs    []string         `json:"logs"`
	Shape   [2]int           `json:"shape"`
	Columns []string         `json:"columns"`
	Preview []map[string]any `json:"preview"`
}

// CleanResult describes a cleaning run
type CleanResult struct {
	Message  string             `json:"message"`
	Logs     []string           `json:"logs"`
	Shape    [2]int             `json:"shape"`
	Stats    dataset.CleanStats `json:"stats"`
	Artifact string             `json:"artifact"`
}

// ResetResult reports what a reset removed
type ResetResult struct {
	Scope   Scope                 `json:"scope"`
	Deleted int                   `json:"deleted_files"`
	Status  domain.WorkflowStatus `json:"status"`
}

// Session is the workflow state of one dataset. It is safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	flags      domain.WorkflowStatus
	log        []string
	data       *dataset.Table
	previewLen int
}

// NewSession creates a session with every stage not started
func NewSession() *Session {
	return &Session{
		flags:      domain.NewWorkflowStatus(),
		previewLen: config.DefaultPreviewRows,
	}
}

// Status returns a copy of the stage flags
func (s *Session) Status() domain.WorkflowStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.WorkflowStatus, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

// Logs returns a copy of the session log
func (s *Session) Logs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.log...)
}

// Dataset returns the imported table, or ErrDatasetUnavailable before any
// successful import
func (s *Session) Dataset() (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, ErrDatasetUnavailable
	}
	return s.data, nil
}

// ImportDataset loads a CSV or XLSX file and marks the import stage.
// The log restarts with every import attempt.
func (s *Session) ImportDataset(path string) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = nil

	t, err := dataset.Load(path)
	if err != nil {
		s.log = append(s.log, fmt.Sprintf("Error: could not import %s", filepath.Base(path)))
		return nil, &ImportError{Path: path, Cause: err}
	}

	s.data = t
	s.flags[domain.StageImport] = true
	s.log = append(s.log, fmt.Sprintf("Dataset imported successfully: %s", path))

	return &ImportResult{
		Message: "Import successful",
		Logs:    append([]string{}, s.log...),
		Shape:   t.Shape(),
		Columns: t.Columns(),
		Preview: t.Records(s.previewLen),
	}, nil
}

// Clean trims and de-duplicates the imported dataset, writes it as the
// canonical artifact and marks the cleaning stage
func (s *Session) Clean(store Store) (*CleanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, ErrDatasetUnavailable
	}

	cleaned, stats := dataset.Clean(s.data)
	if err := store.SaveTable(config.CleanedDatasetFile, cleaned); err != nil {
		return nil, fmt.Errorf("failed to write cleaned dataset: %w", err)
	}

	s.data = cleaned
	s.flags[domain.StageCleaning] = true
	s.log = append(s.log, fmt.Sprintf("Cleaning done: %d rows kept, %d empty and %d duplicate rows removed",
		stats.RowsOut, stats.EmptyRows, stats.DuplicateRows))

	return &CleanResult{
		Message:  "Cleaning successful",
		Logs:     append([]string{}, s.log...),
		Shape:    cleaned.Shape(),
		Stats:    stats,
		Artifact: config.CleanedDatasetFile,
	}, nil
}

// Reset validates scope, then clears every flag, the log and the dataset,
// and deletes the scope's artifacts. Missing artifacts are skipped; the
// result counts files actually removed. Deletion failures are joined into
// the returned error after every artifact has been attempted.
func (s *Session) Reset(store Store, scope string) (*ResetResult, error) {
	parsed, err := ParseScope(scope)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.flags = domain.NewWorkflowStatus()
	s.log = []string{"Workflow reset."}
	s.data = nil

	result := &ResetResult{Scope: parsed, Status: domain.NewWorkflowStatus()}
	var errs []error
	for _, name := range parsed.Artifacts() {
		removed, err := store.Delete(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if removed {
			result.Deleted++
		}
	}
	return result, errors.Join(errs...)
}
