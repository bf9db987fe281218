package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
	"canpulse/internal/reference"
)

func TestParseFlags_Defaults(t *testing.T) {
	cfg := config.Default()

	opts, err := parseFlags(nil, io.Discard, cfg)

	require.NoError(t, err)
	assert.Equal(t, cfg.Scraper.URL, opts.url)
	assert.True(t, opts.matches)
	assert.False(t, opts.catalogs)
	assert.Equal(t, reference.DefaultTicketsUpdated, opts.lastUpdated)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-bogus"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "nothing selected", args: []string{"-matches=false"}},
		{name: "bad ticket date", args: []string{"-catalogs", "-tickets-updated", "07/02/2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args, io.Discard, config.Default())
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer

	_, err := parseFlags([]string{"-h"}, &stderr, config.Default())

	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, stderr.String(), "-catalogs")
}

func TestRun_CatalogsOnly(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	var stdout bytes.Buffer

	err := run(context.Background(), []string{
		"-data", dataDir, "-matches=false", "-catalogs", "-tickets-updated", "2026-01-15",
	}, &stdout, io.Discard)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dataDir, config.StadiumsFile))
	assert.FileExists(t, filepath.Join(dataDir, config.TicketsFile))
	assert.NoFileExists(t, filepath.Join(dataDir, config.MatchesFile))
	assert.Contains(t, stdout.String(), "6 rows")
	assert.Contains(t, stdout.String(), "15 rows")
}
