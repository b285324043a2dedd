package site_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/archief/internal/catalogue"
	"github.com/mesh-intelligence/archief/internal/site"
	"github.com/mesh-intelligence/archief/internal/store/storetest"
	"github.com/mesh-intelligence/archief/pkg/types"
)

type fixture struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cat := storetest.NewCatalogue(t)
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)

	s, err := site.New(site.Deps{
		Objects:  catalogue.NewResolver(cat, logger),
		Messages: cat,
		Logger:   logger,
		Options:  site.Options{SiteName: "Testarchief", PageSize: 10},
	})
	require.NoError(t, err)
	return fixture{handler: s.Handler(), logs: logs}
}

func (f fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Testarchief")
	assert.Contains(t, body, `href="/archief/object/prints_9"`)
	assert.Contains(t, body, "On Loan")
	assert.Contains(t, body, `href="/bericht/25"`)
	assert.NotContains(t, body, `href="/archief/object/paintings_0"`, "only the ten newest objects are listed")
	assert.NotContains(t, body, `href="/bericht/15"`, "only the ten newest messages are listed")
}

func TestMenu(t *testing.T) {
	f := newFixture(t)
	body := f.get(t, "/berichten").Body.String()

	home := strings.Index(body, `href="/"`)
	archief := strings.Index(body, `href="/archief"`)
	berichten := strings.Index(body, `href="/berichten" class=" active"`)
	stats := strings.Index(body, `href="/statistieken"`)
	info := strings.Index(body, `href="/informatie" class="right"`)

	require.True(t, home >= 0 && archief >= 0 && berichten >= 0 && stats >= 0 && info >= 0, body)
	assert.Less(t, home, archief)
	assert.Less(t, archief, berichten)
	assert.Less(t, berichten, stats)
	assert.Less(t, stats, info)
}

func TestArchive(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/archief")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, name := range []string{"paintings", "photographs", "prints"} {
		assert.Contains(t, body, "<li>"+name+"</li>")
	}
}

func TestObject(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/archief/object/paintings_0")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	maker := strings.Index(body, "<th>Maker</th>")
	title := strings.Index(body, "<th>Title</th>")
	year := strings.Index(body, "<th>Year</th>")
	require.True(t, maker >= 0 && title >= 0 && year >= 0, body)
	assert.Less(t, maker, title, "layout order")
	assert.Less(t, title, year, "layout order")

	assert.Contains(t, body, "The Night Watch")
	assert.Contains(t, body, "<th>Notes</th><td>Restored in 1975</td>", "fields outside the layout are shown")
	assert.Contains(t, body, `id="extra-`)
}

func TestObjectInvalid(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "malformed", target: "/archief/object/paintings_abc", status: http.StatusNotFound},
		{name: "no separator", target: "/archief/object/paintings", status: http.StatusNotFound},
		{name: "unknown collection", target: "/archief/object/nonexistent_0", status: http.StatusNotFound},
		{name: "out of range", target: "/archief/object/paintings_99999", status: http.StatusNotFound},
		{name: "plus decodes to space", target: "/archief/object/old+paintings_0", status: http.StatusNotFound},
		{name: "bad escape", target: "/archief/object/paintings%25zz_0", status: http.StatusNotFound},
		{name: "dangling type", target: "/archief/object/prints_7", status: http.StatusInternalServerError},
		{name: "dangling field", target: "/archief/object/prints_8", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.get(t, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), site.InvalidCatalogueID)
		})
	}
}

func TestObjectEscapedKey(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/archief/object/paintings%5F3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Self-portrait")
	assert.NotContains(t, rec.Body.String(), "duplicate row")
}

// recordingObjects remembers the last key it was asked to resolve.
type recordingObjects struct {
	failingObjects
	key string
}

func (o *recordingObjects) Resolve(_ context.Context, key string) (*types.ResolvedObject, error) {
	o.key = key
	return nil, types.ErrObjectNotFound
}

func TestObjectKeyDecoding(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "plain", target: "/archief/object/paintings_0", want: "paintings_0"},
		{name: "plus is space", target: "/archief/object/old+paintings_0", want: "old paintings_0"},
		{name: "escaped separator", target: "/archief/object/paintings%5F3", want: "paintings_3"},
		{name: "literal percent", target: "/archief/object/100%25_1", want: "100%_1"},
		{name: "escaped plus", target: "/archief/object/a%252Bb_1", want: "a+b_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := &recordingObjects{}
			s, err := site.New(site.Deps{
				Objects:  objects,
				Messages: storetest.NewCatalogue(t),
				Logger:   zerolog.Nop(),
			})
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.want, objects.key)
		})
	}
}

func TestMessagesPagination(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		target    string
		first     string
		last      string
		wantPrev  bool
		wantNext  bool
		wantEmpty bool
	}{
		{target: "/berichten", first: "/bericht/25", last: "/bericht/16", wantNext: true},
		{target: "/berichten?page=abc", first: "/bericht/25", last: "/bericht/16", wantNext: true},
		{target: "/berichten?page=2", first: "/bericht/15", last: "/bericht/6", wantPrev: true, wantNext: true},
		{target: "/berichten?page=3", first: "/bericht/5", last: "/bericht/1", wantPrev: true},
		{target: "/berichten?page=9", wantPrev: true, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := f.get(t, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()

			if tt.wantEmpty {
				assert.Contains(t, body, "Geen berichten.")
			} else {
				assert.Contains(t, body, `href="`+tt.first+`"`)
				assert.Contains(t, body, `href="`+tt.last+`"`)
			}
			assert.Equal(t, tt.wantPrev, strings.Contains(body, `rel="prev"`))
			assert.Equal(t, tt.wantNext, strings.Contains(body, `rel="next"`))
		})
	}
}

func TestMessage(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/bericht/7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bericht 7")
	assert.Contains(t, rec.Body.String(), "Inhoud van bericht 7.")

	assert.Equal(t, http.StatusNotFound, f.get(t, "/bericht/999").Code)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/bericht/abc").Code)
	assert.Equal(t, http.StatusNotFound, f.get(t, "/bericht/0").Code)
}

func TestInfoAndNotFound(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.get(t, "/informatie").Code)

	rec := f.get(t, "/onbekend")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pagina niet gevonden")
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/statistieken")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<tr><td>paintings</td><td>5</td></tr>")
	assert.Contains(t, body, "<tr><td>photographs</td><td>0</td></tr>")
	assert.Contains(t, body, "<tr><td>prints</td><td>6</td></tr>")
	assert.Contains(t, body, "<tr><th>Totaal</th><th>11</th></tr>")
	assert.Less(t, strings.Index(body, "paintings"), strings.Index(body, "prints"))
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	f := newFixture(t)

	f.get(t, "/archief/object/paintings_0")
	f.get(t, "/archief/object/paintings_abc")
	f.get(t, "/archief/object/prints_7")

	rec := f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `archief_resolutions_total{outcome="resolved"} 1`)
	assert.Contains(t, body, `archief_resolutions_total{outcome="malformed"} 1`)
	assert.Contains(t, body, `archief_resolutions_total{outcome="integrity"} 1`)
	assert.Contains(t, body, `archief_http_requests_total{method="GET",route="/archief/object/{key}",status="200"} 1`)
}

func TestRequestIDAndAccessLog(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/archief")
	id := rec.Header().Get(site.RequestIDHeader)
	require.Len(t, id, 36)

	logs := f.logs.String()
	assert.Contains(t, logs, `"request_id":"`+id+`"`)
	assert.Contains(t, logs, `"path":"/archief"`)

	f.logs.Reset()
	f.get(t, "/healthz")
	assert.NotContains(t, f.logs.String(), "http request")
}

func TestGzip(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/berichten", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Bericht 25")
}

// failingObjects fails every lookup with a store error.
type failingObjects struct{}

var errStore = errors.New("store unavailable")

func (failingObjects) Resolve(context.Context, string) (*types.ResolvedObject, error) {
	return nil, errStore
}

func (failingObjects) Latest(context.Context, int, int64) ([]types.ObjectSummary, error) {
	return nil, errStore
}

func (failingObjects) Collections(context.Context) ([]types.Collection, error) {
	return nil, errStore
}

func (failingObjects) Stats(context.Context) ([]types.CollectionStat, error) {
	return nil, errStore
}

func TestStoreFailures(t *testing.T) {
	cat := storetest.NewCatalogue(t)
	s, err := site.New(site.Deps{
		Objects:  failingObjects{},
		Messages: cat,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	h := s.Handler()

	for _, target := range []string{"/", "/archief", "/statistieken"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/archief/object/paintings_0", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), site.InvalidCatalogueID)
}
