package leadexport

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/internal/leadstore"
)

var exportNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

type staticReader struct {
	records []leads.Lead
	err     error
}

func (r staticReader) Read(context.Context) ([]leads.Lead, error) {
	return r.records, r.err
}

func TestExporterEmptyStore(t *testing.T) {
	exp := NewExporter(leadstore.New(leadstore.NewMemoryBackend(), "", nil), nil, nil).
		WithClock(func() time.Time { return exportNow })

	file, err := exp.CSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rollerup-leads-2026-03-14.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Empty(t, file.Data)
	assert.Zero(t, file.Count)
}

func TestExporterReadError(t *testing.T) {
	boom := errors.New("redis down")
	exp := NewExporter(staticReader{err: boom}, nil, nil)

	_, err := exp.CSV(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = exp.XLSX(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestExporterXLSX(t *testing.T) {
	lead := leads.NewDraft(exportNow)
	lead.FirstName = "Jane"
	lead.Message = `He said "hi"`
	exp := NewExporter(staticReader{records: []leads.Lead{lead}}, nil, nil).
		WithClock(func() time.Time { return exportNow })

	file, err := exp.XLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rollerup-leads-2026-03-14.xlsx", file.Name)
	assert.Equal(t, 1, file.Count)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetLeads)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "firstName", rows[0][0])
	assert.Equal(t, "Jane", rows[1][0])
	assert.Contains(t, rows[1], `He said "hi"`)
	assert.Contains(t, rows[1], "LPR,Memberships")
}

func TestExporterWriteFile(t *testing.T) {
	lead := leads.NewDraft(exportNow)
	lead.FirstName = "Jane"
	exp := NewExporter(staticReader{records: []leads.Lead{lead}}, nil, nil).
		WithClock(func() time.Time { return exportNow })
	dir := t.TempDir()

	path, err := exp.WriteFile(context.Background(), dir, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rollerup-leads-2026-03-14.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "firstName,lastName,"))

	_, err = exp.WriteFile(context.Background(), dir, "pdf")
	assert.Error(t, err)
}

func TestRejectedSubmissionExportsOneRow(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := leadstore.New(leadstore.NewMemoryBackend(), "", nil)
	before, err := store.Read(context.Background())
	require.NoError(t, err)

	form := leads.NewForm(leads.FormConfig{
		Transport: leads.NewHTTPTransport(srv.URL, 5*time.Second),
		Store:     store,
		Now:       func() time.Time { return exportNow },
	})
	_, err = form.Update(leads.FieldFirstName, "Jane")
	require.NoError(t, err)
	_, err = form.Update(leads.FieldEmail, "jane@x.com")
	require.NoError(t, err)
	_, err = form.Update(leads.FieldCompany, "Acme")
	require.NoError(t, err)

	result, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, leads.StateFailedButSaved, result.State)
	assert.Equal(t, int32(1), calls.Load())

	after, err := store.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "Jane", after[0].FirstName)
	assert.Equal(t, []leads.Interest{leads.InterestLPR, leads.InterestMemberships}, after[0].Interests)

	file, err := NewExporter(store, nil, nil).CSV(context.Background())
	require.NoError(t, err)
	lines := strings.Split(string(file.Data), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "firstName,lastName,email,phone,company,role,sites,country,interests,message,source,ts", lines[0])
	assert.Equal(t,
		`"Jane","","jane@x.com","","Acme","","1-5","United States","LPR,Memberships","","rollerup_marketing_site","2026-03-14T09:26:53.589Z"`,
		lines[1])
}
