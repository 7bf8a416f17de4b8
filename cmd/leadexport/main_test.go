package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/rollerup-site/internal/config"
	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/internal/leadstore"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

func TestRunExportsFileStore(t *testing.T) {
	dataDir := t.TempDir()
	store := leadstore.New(leadstore.NewFileBackend(dataDir), "", nil)
	lead := leads.NewDraft(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	lead.FirstName = "Jane"
	require.NoError(t, store.Append(context.Background(), lead))

	cfg := &appconfig.Config{LeadsStore: appconfig.StoreFile, LeadsFileDir: dataDir}
	outDir := t.TempDir()
	var stdout bytes.Buffer

	err := run(context.Background(), cfg, []string{"-out", outDir}, &stdout, logging.New("error"))
	require.NoError(t, err)

	path := strings.TrimSpace(stdout.String())
	assert.Equal(t, outDir, filepath.Dir(path))
	assert.Regexp(t, `^rollerup-leads-\d{4}-\d{2}-\d{2}\.csv$`, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], `"Jane"`))
}

func TestRunRejectsBadFlags(t *testing.T) {
	cfg := &appconfig.Config{LeadsStore: appconfig.StoreMemory}
	var stdout bytes.Buffer

	assert.Error(t, run(context.Background(), cfg, []string{"-format", "pdf", "-out", t.TempDir()}, &stdout, logging.New("error")))
	assert.Error(t, run(context.Background(), cfg, []string{"-nope"}, &stdout, logging.New("error")))
}
