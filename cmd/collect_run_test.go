package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/vendor-cli/internal/model"
	"github.com/sells-group/vendor-cli/internal/report"
)

// runCollect executes the collect command against a fake SerpAPI endpoint,
// writing artifacts into outDir.
func runCollect(t *testing.T, baseURL, outDir string) error {
	t.Helper()
	t.Setenv("VENDOR_SERPAPI_KEY", "test-key")
	t.Setenv("VENDOR_SERPAPI_BASE_URL", baseURL)
	t.Setenv("VENDOR_OUTPUT_DIR", outDir)
	t.Setenv("VENDOR_SEARCH_DELAY_MS", "1")
	t.Setenv("VENDOR_SEARCH_MAX_PAGES", "1")

	rootCmd.SetArgs([]string{"collect"})
	return rootCmd.Execute()
}

// servePages answers /search.json from canned JSON bodies keyed by query,
// with an empty result set for everything else.
func servePages(pages map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query().Get("q")
		if body, ok := pages[q]; ok && r.URL.Query().Get("start") == "0" {
			_, _ = w.Write([]byte(body))
			return
		}
		_, _ = w.Write([]byte(`{"local_results": []}`))
	}
}

func TestCollect_ZeroListingsWritesNoArtifacts(t *testing.T) {
	srv := httptest.NewServer(servePages(nil))
	defer srv.Close()

	outDir := t.TempDir()
	require.NoError(t, runCollect(t, srv.URL, outDir))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCollect_NewVendorsWriteDatedAndMaster(t *testing.T) {
	srv := httptest.NewServer(servePages(map[string]string{
		"Tent House Bangalore": `{"local_results": [
			{"title": "Shree Balaji Tent House", "address": "12 MG Road, Bengaluru", "phone": "098765 43210", "rating": 4.6, "reviews": 87}
		]}`,
	}))
	defer srv.Close()

	outDir := t.TempDir()
	require.NoError(t, runCollect(t, srv.URL, outDir))

	dated, master := artifactPaths(outDir, "Bangalore", time.Now().Format(runDateFormat))

	for _, path := range []string{dated, master} {
		loaded, err := report.Load(path)
		require.NoError(t, err, "artifact %s", path)
		require.Len(t, loaded, 1, "artifact %s", path)
		assert.Equal(t, "Tent House", loaded[0].Category)
		assert.Equal(t, "Shree Balaji Tent House", loaded[0].Name)
		assert.Equal(t, "+919876543210", loaded[0].Phone)
		assert.True(t, loaded[0].PhoneValid)
	}
}

func TestCollect_NothingNewSkipsDatedFileKeepsMaster(t *testing.T) {
	srv := httptest.NewServer(servePages(map[string]string{
		"Event Caterers Bangalore": `{"local_results": [
			{"title": "Acme Caterers", "address": "1 MG Road, Bengaluru", "phone": "098765 43210"}
		]}`,
	}))
	defer srv.Close()

	outDir := t.TempDir()
	dated, master := artifactPaths(outDir, "Bangalore", time.Now().Format(runDateFormat))

	// Seed the master with the same vendor from an earlier run.
	seed := model.VendorBatch{{
		Category:   "Event Caterers",
		Name:       "Acme Caterers",
		Phone:      "+919876543210",
		PhoneValid: true,
		Address:    "1 MG Road, Bengaluru",
		Website:    model.NotAvailable,
		MapsLink:   model.NotAvailable,
		Collected:  "26-Feb-2026",
	}}
	require.NoError(t, report.Save(seed, model.Summarize(seed), master))

	require.NoError(t, runCollect(t, srv.URL, outDir))

	assert.NoFileExists(t, dated)

	loaded, err := report.Load(master)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Acme Caterers", loaded[0].Name)
	assert.Equal(t, "26-Feb-2026", loaded[0].Collected)
}
