package files

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"canpulse/internal/config"
	"canpulse/internal/dataset"
	apierrors "canpulse/internal/errors"
	"canpulse/internal/exporter"
)

// ErrArtifactMissing is returned when a named artifact does not exist
var ErrArtifactMissing = errors.New("artifact not found")

// Store keeps named tabular artifacts flat in the data directory
type Store struct {
	paths  *config.Paths
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewStore creates a store rooted at paths.DataDir
func NewStore(paths *config.Paths, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "store"))
	return &Store{
		paths:  paths,
		writer: exporter.NewCSVWriter(paths, logger),
		logger: logger,
	}
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.paths.DataDir
}

// Path returns the full path of an artifact. Absolute names are kept as-is.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return s.paths.ArtifactPath(name)
}

// Exists checks if an artifact is present
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	exists := err == nil && !info.IsDir()

	s.logger.Debug("Artifact exists check",
		slog.String("name", name),
		slog.Bool("exists", exists))

	return exists
}

// Load reads an artifact into a table
func (s *Store) Load(name string) (*dataset.Table, error) {
	path := s.Path(name)
	if !s.Exists(name) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, name)
	}

	t, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return t, nil
}

// Save writes header and rows as the named artifact, replacing it
func (s *Store) Save(name string, header []string, rows [][]string) error {
	if err := s.writer.WriteSimpleCSV(s.Path(name), header, rows); err != nil {
		return apierrors.NewStorageError("failed to save "+name, err).WithContext("artifact", name)
	}

	s.logger.Info("Artifact saved",
		slog.String("name", name),
		slog.Int("rows", len(rows)))
	return nil
}

// SaveTable writes a table as the named artifact
func (s *Store) SaveTable(name string, t *dataset.Table) error {
	return s.Save(name, t.Header, t.Rows)
}

// WriteFrom copies raw bytes from r into the named artifact. The bytes are
// staged in a temp file next to it; the artifact is replaced only when the
// copy succeeded and was non-empty, so a failed or empty write leaves the
// previous file untouched and returns 0.
func (s *Store) WriteFrom(name string, r io.Reader) (int64, error) {
	path := s.Path(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, apierrors.NewStorageError("failed to create directory", err).WithContext("artifact", name)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, apierrors.NewStorageError("failed to create "+name, err).WithContext("artifact", name)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, apierrors.NewStorageError("failed to write "+name, err).WithContext("artifact", name)
	}
	if n == 0 {
		return 0, nil
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return 0, apierrors.NewStorageError("failed to write "+name, err).WithContext("artifact", name)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, apierrors.NewStorageError("failed to replace "+name, err).WithContext("artifact", name)
	}

	s.logger.Info("Artifact written",
		slog.String("name", name),
		slog.Int64("size_bytes", n))
	return n, nil
}

// Delete removes an artifact. A missing artifact is not an error;
// the boolean reports whether a file was actually removed.
func (s *Store) Delete(name string) (bool, error) {
	err := os.Remove(s.Path(name))
	switch {
	case err == nil:
		s.logger.Info("Artifact deleted", slog.String("name", name))
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, apierrors.NewStorageError("failed to delete "+name, err).WithContext("artifact", name)
	}
}

// CountRows returns the number of data rows of an artifact, 0 when it is
// missing or unreadable
func (s *Store) CountRows(name string) int {
	t, err := s.Load(name)
	if err != nil {
		if !errors.Is(err, ErrArtifactMissing) {
			s.logger.Warn("Failed to count artifact rows",
				slog.String("name", name),
				slog.String("error", err.Error()))
		}
		return 0
	}
	return t.Len()
}

// CanonicalDataset locates the dataset views are derived from: the cleaned
// artifact first, then the raw import.
func (s *Store) CanonicalDataset() (string, error) {
	for _, name := range []string{config.CleanedDatasetFile, config.RawDatasetFile} {
		if s.Exists(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no %s or %s in %s",
		ErrArtifactMissing, config.CleanedDatasetFile, config.RawDatasetFile, s.paths.DataDir)
}
