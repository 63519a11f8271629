package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/config"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/domain"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

func run(t *testing.T, repo *memory.Repository, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{BaseURL: "http://localhost:8080", ShortCodeLength: 6, ShortCodeMaxAttempts: 10}
	root := newRootCmd(cfg, func() (ports.Store, error) { return repo, nil })

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCreateCommand(t *testing.T) {
	repo := memory.NewRepository()

	out, err := run(t, repo, "create", "--url", "https://example.com", "--code", "promo")
	require.NoError(t, err)
	assert.Contains(t, out, "Code: promo")
	assert.Contains(t, out, "http://localhost:8080/open/promo")

	_, err = run(t, repo, "create", "--url", "https://other.example", "--code", "promo")
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = run(t, repo, "create")
	assert.Error(t, err, "--url is required")
}

func TestExportImportLinks(t *testing.T) {
	src := memory.NewRepository()
	_, err := run(t, src, "create", "--url", "https://a.example", "--code", "aaa")
	require.NoError(t, err)
	_, err = run(t, src, "create", "--url", "https://b.example", "--code", "bbb")
	require.NoError(t, err)

	dump, err := run(t, src, "export-links")
	require.NoError(t, err)
	var links []domain.Link
	require.NoError(t, json.Unmarshal([]byte(dump), &links))
	require.Len(t, links, 2)

	file := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(file, []byte(dump), 0o600))

	dst := memory.NewRepository()
	_, err = run(t, dst, "create", "--url", "https://taken.example", "--code", "bbb")
	require.NoError(t, err)

	out, err := run(t, dst, "import-links", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 2 links")

	imported, err := dst.GetByShortCode(context.Background(), "aaa")
	require.NoError(t, err)
	assert.Equal(t, links[0].ID, imported.ID)
	assert.Equal(t, "https://a.example", imported.OriginalURL)
}

func writeDump(t *testing.T, dump string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "links.json")
	require.NoError(t, os.WriteFile(file, []byte(dump), 0o600))
	return file
}

func TestImportLinksRejectsInvalidEntries(t *testing.T) {
	repo := memory.NewRepository()
	file := writeDump(t, `[
		{"id":"dup","original_url":"not a url","short_code":""},
		{"id":"dup","original_url":"ftp:/x","short_code":"zzz"},
		{"id":"dup","original_url":"https://ok.example","short_code":"ok1"},
		{"id":"dup","original_url":"https://again.example","short_code":"ok2"},
		{"id":"bad","original_url":"https://bad.example","short_code":"has space"},
		{"id":"nocode","original_url":"https://nocode.example","short_code":""}
	]`)

	out, err := run(t, repo, "import-links", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 6 links")

	links, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "dup", links[0].ID)
	assert.Equal(t, "https://ok.example", links[0].OriginalURL)
	assert.Equal(t, "ok1", links[0].ShortCode)

	got, err := repo.GetByID(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, "ok1", got.ShortCode)
}

func TestImportLinksActiveDefault(t *testing.T) {
	repo := memory.NewRepository()
	file := writeDump(t, `[
		{"id":"a","original_url":"https://a.example","short_code":"aaa"},
		{"id":"b","original_url":"https://b.example","short_code":"bbb","is_active":false},
		{"id":"c","original_url":"https://c.example","short_code":"ccc","is_active":true,"click_count":7}
	]`)

	_, err := run(t, repo, "import-links", "--file", file)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, a.IsActive, "missing is_active imports as active")
	assert.False(t, a.CreatedAt.IsZero())

	b, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.False(t, b.IsActive)

	c, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.Zero(t, c.ClickCount)
}

func TestExportEventsAndSummary(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	link, err := services.NewLinkService(repo).CreateLink(ctx, domain.NewLink{OriginalURL: "https://example.com"})
	require.NoError(t, err)
	tracking := services.NewTrackingService(repo, repo)
	for _, c := range []string{"US", "US", "FR"} {
		_, err := tracking.RecordClick(ctx, link.ID, domain.EventPayload{Country: c, Referrer: "ref.example"})
		require.NoError(t, err)
	}

	out, err := run(t, repo, "export-events", "--link", link.ID)
	require.NoError(t, err)
	var events []domain.Event
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	assert.Len(t, events, 3)

	out, err = run(t, repo, "export-events", "--format", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	_, err = run(t, repo, "export-events", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, repo, "export-events", "--link", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err = run(t, repo, "summary", "--range", "7d")
	require.NoError(t, err)
	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "7d", summary.TimeRange)
	assert.Equal(t, 3, summary.TotalClicks)
	assert.Equal(t, 2, summary.UniqueCountries)
}
