package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for artifact locations.
type Paths struct {
	ExecutableDir string
	DataDir       string
	LogsDir       string
}

// GetPaths resolves the configured directories. Relative directories are
// taken relative to the executable location, never the working directory.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       resolveDir(exeDir, cfg.DataDir),
		LogsDir:       resolveDir(exeDir, cfg.LogsDir),
	}, nil
}

// NewPaths builds paths rooted at an explicit data directory
func NewPaths(dataDir string) *Paths {
	return &Paths{
		ExecutableDir: filepath.Dir(dataDir),
		DataDir:       dataDir,
		LogsDir:       filepath.Join(filepath.Dir(dataDir), "logs"),
	}
}

func resolveDir(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// ArtifactPath returns the path of a named artifact in the data directory
func (p *Paths) ArtifactPath(name string) string {
	return filepath.Join(p.DataDir, name)
}

// RawDatasetPath is where uploaded or provided raw datasets are imported from
func (p *Paths) RawDatasetPath() string {
	return p.ArtifactPath(RawDatasetFile)
}

// CleanedDatasetPath is the canonical dataset location
func (p *Paths) CleanedDatasetPath() string {
	return p.ArtifactPath(CleanedDatasetFile)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("datasets",
			slog.String("raw", p.RawDatasetPath()),
			slog.String("canonical", p.CleanedDatasetPath()),
		))
}
