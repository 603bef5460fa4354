package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/storage"
)

type testEnv struct {
	configPath string
	dataDir    string
	exportDir  string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	for _, key := range []string{"RESERVOIR_DATA_DIR", "RESERVOIR_EXPORT_DIR", "RESERVOIR_LOG_LEVEL", "RESERVOIR_BACKEND"} {
		t.Setenv(key, "")
	}

	root := t.TempDir()
	te := testEnv{
		configPath: filepath.Join(root, "config.yml"),
		dataDir:    filepath.Join(root, "data"),
		exportDir:  filepath.Join(root, "exports"),
	}
	assert.NilError(t, os.MkdirAll(te.exportDir, 0o755))

	cfg := "data_dir: " + te.dataDir + "\nexport_dir: " + te.exportDir + "\ncheck:\n  exclude_domains: []\n"
	assert.NilError(t, os.WriteFile(te.configPath, []byte(cfg), 0o644))
	return te
}

func (te testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	e := &env{}
	cmd := newRootCmd(e)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", te.configPath}, args...))
	err := cmd.Execute()
	e.close()
	return out.String(), err
}

func (te testEnv) load(t *testing.T) *model.Collection {
	t.Helper()
	c, err := storage.NewJSONStorage(filepath.Join(te.dataDir, storage.StoreFileName)).Load()
	assert.NilError(t, err)
	return c
}

func TestAddAndList(t *testing.T) {
	te := newTestEnv(t)

	out, err := te.run(t, "add", "Hacker News", "https://news.ycombinator.com", "--tags", "news,tech")
	assert.NilError(t, err)
	id := strings.TrimSpace(out)

	_, err = te.run(t, "add", "Go blog", "go.dev/blog", "--note", "weekly")
	assert.NilError(t, err)

	c := te.load(t)
	assert.Equal(t, c.Len(), 2)
	b := c.Get(id)
	assert.Assert(t, b != nil)
	assert.Equal(t, b.Link, "news.ycombinator.com")
	assert.DeepEqual(t, b.Tags, []string{"news", "tech"})

	out, err = te.run(t, "list")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Hacker News"))
	assert.Assert(t, is.Contains(out, "#news #tech"))
	assert.Assert(t, is.Contains(out, "Go blog"))

	out, err = te.run(t, "list", "--field", "tags", "news")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Hacker News"))
	assert.Assert(t, !strings.Contains(out, "Go blog"))

	// The all field also searches notes
	out, err = te.run(t, "list", "weekly")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Go blog"))
}

func TestAdd_Rejects(t *testing.T) {
	te := newTestEnv(t)

	_, err := te.run(t, "add", "Example", "https://example.com")
	assert.NilError(t, err)

	_, err = te.run(t, "add", "Again", "example.com")
	assert.ErrorIs(t, err, ErrDuplicateLink)

	_, err = te.run(t, "add", "", "other.com")
	assert.ErrorContains(t, err, "must not be empty")

	assert.Equal(t, te.load(t).Len(), 1)
}

func TestList_JSON(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.run(t, "add", "Example", "example.com")
	assert.NilError(t, err)

	out, err := te.run(t, "list", "--json", "--sort", "newest")
	assert.NilError(t, err)

	var got []model.Bookmark
	assert.NilError(t, json.Unmarshal([]byte(out), &got))
	assert.Assert(t, is.Len(got, 1))
	assert.Equal(t, got[0].Title, "Example")
}

func TestList_InvalidFlags(t *testing.T) {
	te := newTestEnv(t)

	_, err := te.run(t, "list", "--field", "body")
	assert.ErrorContains(t, err, "invalid filter field")

	_, err = te.run(t, "list", "--sort", "random")
	assert.ErrorContains(t, err, "invalid sort mode")
}

func TestDelete(t *testing.T) {
	te := newTestEnv(t)
	out, err := te.run(t, "add", "Example", "example.com")
	assert.NilError(t, err)
	id := strings.TrimSpace(out)

	_, err = te.run(t, "delete", "missing-id")
	assert.ErrorContains(t, err, "no bookmark")

	out, err = te.run(t, "delete", id)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, `Deleted "Example"`))
	assert.Equal(t, te.load(t).Len(), 0)
}

func TestImport(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.run(t, "add", "Existing", "example.com")
	assert.NilError(t, err)

	file := filepath.Join(t.TempDir(), "bookmarks.html")
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Dev</H3>
    <DL><p>
        <DT><A HREF="https://go.dev" ADD_DATE="1700000000">Go</A>
        <DT><A HREF="https://example.com">Duplicate</A>
    </DL><p>
</DL><p>`
	assert.NilError(t, os.WriteFile(file, []byte(html), 0o644))

	out, err := te.run(t, "import", file)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Imported 1 bookmarks (1 duplicates skipped)"))

	c := te.load(t)
	assert.Equal(t, c.Len(), 2)
	imported := c.All()[1]
	assert.Equal(t, imported.Link, "go.dev")
	assert.DeepEqual(t, imported.Tags, []string{"Dev"})
	assert.Equal(t, imported.Timestamp, uint64(1700000000))
}

func TestImport_MissingFile(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.run(t, "import", filepath.Join(t.TempDir(), "nope.html"))
	assert.ErrorContains(t, err, "opening file")
}

func TestExport(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.run(t, "add", "Example", "example.com")
	assert.NilError(t, err)

	out, err := te.run(t, "export")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "Exported 1 bookmarks to "+te.exportDir))

	out, err = te.run(t, "export", "--html")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, ".html"))

	entries, err := os.ReadDir(te.exportDir)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(entries, 2))
}

func TestExport_MissingDir(t *testing.T) {
	te := newTestEnv(t)

	_, err := te.run(t, "export", "--dir", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, storage.ErrOpen)
}

func TestCheck_Prune(t *testing.T) {
	te := newTestEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/alive", func(w http.ResponseWriter, r *http.Request) {})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := te.run(t, "add", "Alive", srv.URL+"/alive")
	assert.NilError(t, err)
	_, err = te.run(t, "add", "Dead", srv.URL+"/dead")
	assert.NilError(t, err)

	out, err := te.run(t, "check", "--quiet", "--prune")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "1 healthy, 1 dead, 0 unreachable"))
	assert.Assert(t, is.Contains(out, "Removed 1 dead bookmarks"))

	c := te.load(t)
	assert.Equal(t, c.Len(), 1)
	assert.Equal(t, c.All()[0].Title, "Alive")
}

func TestOpen_NoMatches(t *testing.T) {
	te := newTestEnv(t)

	out, err := te.run(t, "open", "nothing")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "No bookmarks found for 'nothing'"))
}

func TestInvalidConfig(t *testing.T) {
	te := newTestEnv(t)
	assert.NilError(t, os.WriteFile(te.configPath, []byte("backend: redis\n"), 0o644))

	_, err := te.run(t, "list")
	assert.ErrorContains(t, err, "invalid backend")
}

func TestFailedCommandStillReleasesStore(t *testing.T) {
	te := newTestEnv(t)
	cfg := "backend: sqlite\ndata_dir: " + te.dataDir + "\n"
	assert.NilError(t, os.WriteFile(te.configPath, []byte(cfg), 0o644))

	e := &env{}
	cmd := newRootCmd(e)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", te.configPath, "export", "--dir", filepath.Join(t.TempDir(), "missing")})

	err := cmd.Execute()
	assert.ErrorIs(t, err, storage.ErrOpen)
	assert.Assert(t, e.store != nil, "store stays open until close")

	e.close()
	assert.Assert(t, e.store == nil)
	assert.Assert(t, e.log == nil)
	e.close()

	data, err := os.ReadFile(filepath.Join(te.dataDir, LogFileName))
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "export failed"))

	// The database is usable again after release
	out, err := te.run(t, "list")
	assert.NilError(t, err)
	assert.Equal(t, out, "")
}
