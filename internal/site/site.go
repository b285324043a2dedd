// Package site serves the public catalogue website: the home page, the
// archive lookup, object pages and the message feed. All templates are
// embedded in the binary.
package site

import (
	"context"
	"html/template"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/mesh-intelligence/archief/pkg/types"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultSiteName   = "Archief"
	DefaultPageSize   = 10
	DefaultTitleField = 1
	latestCount       = 10
	gzipMinSize       = 256
)

// Objects resolves catalogue keys and lists objects.
type Objects interface {
	Resolve(ctx context.Context, key string) (*types.ResolvedObject, error)
	Latest(ctx context.Context, limit int, titleField int64) ([]types.ObjectSummary, error)
	Collections(ctx context.Context) ([]types.Collection, error)
	Stats(ctx context.Context) ([]types.CollectionStat, error)
}

// Options tune the presentation.
type Options struct {
	SiteName   string
	PageSize   int
	TitleField int64
	Menu       []MenuItem
}

// Deps contains the dependencies of the site.
type Deps struct {
	Objects  Objects
	Messages types.MessageStore
	Metrics  *Metrics
	Logger   zerolog.Logger
	Options  Options
}

// Site holds parsed templates and the backing stores. It is safe for
// concurrent use.
type Site struct {
	templates map[string]*template.Template
	objects   Objects
	messages  types.MessageStore
	metrics   *Metrics
	logger    zerolog.Logger
	opts      Options
}

// New parses the embedded templates and returns a site.
func New(deps Deps) (*Site, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	opts := deps.Options
	if opts.SiteName == "" {
		opts.SiteName = DefaultSiteName
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.TitleField == 0 {
		opts.TitleField = DefaultTitleField
	}
	if opts.Menu == nil {
		opts.Menu = DefaultMenu()
	}
	opts.Menu = SortMenu(opts.Menu)

	m := deps.Metrics
	if m == nil {
		m = NewMetrics()
	}

	return &Site{
		templates: tmpl,
		objects:   deps.Objects,
		messages:  deps.Messages,
		metrics:   m,
		logger:    deps.Logger.With().Str("component", "site").Logger(),
		opts:      opts,
	}, nil
}

// Handler returns the site's HTTP handler with logging, metrics and gzip
// compression applied.
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(requestID)
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)
	r.Use(instrument(s.metrics))

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/", s.Home)
	r.Get("/archief", s.Archive)
	r.Get("/archief/object/{key}", s.Object)
	r.Get("/berichten", s.Messages)
	r.Get("/bericht/{id}", s.Message)
	r.Get("/statistieken", s.Stats)
	r.Get("/informatie", s.Info)
	r.NotFound(s.NotFound)

	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		// Only reachable with invalid static options.
		s.logger.Error().Err(err).Msg("gzip wrapper disabled")
		return r
	}
	return wrap(r)
}

// ListenAndServe serves the site on addr until ctx is cancelled.
func (s *Site) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Int("pid", os.Getpid()).Msg("site listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("shutting down")
		return srv.Shutdown(context.Background())
	}
}
