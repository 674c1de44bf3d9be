// Package scenario loads scenario suites from disk and runs them through the simulator.
package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spachava753/howmanytries/internal/config"
	"github.com/spachava753/howmanytries/internal/models"
)

// Loader loads suites from local paths.
type Loader struct{}

// NewLoader creates a new suite loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromPath loads a single suite file, or every *.toml suite in a directory.
func (l *Loader) LoadFromPath(ctx context.Context, suitePath string) ([]models.Suite, error) {
	absPath, err := filepath.Abs(suitePath)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading suite path: %w", err)
	}

	if !info.IsDir() {
		suite, err := config.LoadSuite(os.DirFS(filepath.Dir(absPath)), filepath.Base(absPath))
		if err != nil {
			return nil, fmt.Errorf("loading suite: %w", err)
		}
		suite.Path = absPath
		return []models.Suite{suite}, nil
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return nil, fmt.Errorf("reading suite directory: %w", err)
	}

	fsys := os.DirFS(absPath)
	var suites []models.Suite
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		suite, err := config.LoadSuite(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("loading suite %s: %w", entry.Name(), err)
		}
		suite.Path = filepath.Join(absPath, entry.Name())
		suites = append(suites, suite)
	}

	if len(suites) == 0 {
		return nil, fmt.Errorf("no suites found in %s", absPath)
	}

	return suites, nil
}
