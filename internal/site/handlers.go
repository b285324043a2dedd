package site

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/mesh-intelligence/archief/pkg/types"
)

// InvalidCatalogueID is shown for every key that cannot be resolved.
const InvalidCatalogueID = "Invalid catalogue ID"

// PageData is embedded in the data of every page.
type PageData struct {
	Title    string
	SiteName string
	Menu     []MenuItem
	Active   string
}

func (s *Site) newPageData(title, active string) PageData {
	return PageData{
		Title:    title,
		SiteName: s.opts.SiteName,
		Menu:     s.opts.Menu,
		Active:   active,
	}
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := s.templates[name]
	if !ok {
		hlog.FromRequest(r).Error().Str("template", name).Msg("template not found")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("template render error")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	hlog.FromRequest(r).Error().Err(err).Msg(msg)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// Health reports that the process is serving.
func (s *Site) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// Home lists the newest objects and messages.
func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	objects, err := s.objects.Latest(ctx, latestCount, s.opts.TitleField)
	if err != nil {
		s.serverError(w, r, err, "load latest objects")
		return
	}
	messages, err := s.messages.LatestMessages(ctx, latestCount, 0)
	if err != nil {
		s.serverError(w, r, err, "load latest messages")
		return
	}

	data := struct {
		PageData
		Objects  []types.ObjectSummary
		Messages []types.Message
	}{
		PageData: s.newPageData("Home", "/"),
		Objects:  objects,
		Messages: messages,
	}
	s.render(w, r, http.StatusOK, "home", data)
}

// Archive lists the collections and offers a key lookup.
func (s *Site) Archive(w http.ResponseWriter, r *http.Request) {
	collections, err := s.objects.Collections(r.Context())
	if err != nil {
		s.serverError(w, r, err, "load collections")
		return
	}

	data := struct {
		PageData
		Collections []types.Collection
	}{
		PageData:    s.newPageData("Archief", "/archief"),
		Collections: collections,
	}
	s.render(w, r, http.StatusOK, "archief", data)
}

// Object renders one catalogue object. Every resolution failure renders the
// same message; integrity faults answer 500, everything else 404.
func (s *Site) Object(w http.ResponseWriter, r *http.Request) {
	key := objectKey(chi.URLParam(r, "key"))
	obj, err := s.objects.Resolve(r.Context(), key)
	if err == nil {
		s.metrics.ObserveResolution(nil)
		data := struct {
			PageData
			Object *types.ResolvedObject
		}{
			PageData: s.newPageData(obj.Key(), "/archief"),
			Object:   obj,
		}
		s.render(w, r, http.StatusOK, "object", data)
		return
	}

	s.metrics.ObserveResolution(err)
	status := http.StatusNotFound
	if types.IsIntegrity(err) {
		status = http.StatusInternalServerError
	}
	hlog.FromRequest(r).Debug().Err(err).Str("key", key).Int("status", status).Msg("object not shown")
	s.render(w, r, status, "invalid", struct{ PageData }{s.newPageData(InvalidCatalogueID, "/archief")})
}

// objectKey decodes the route parameter the way query values are decoded,
// so "+" becomes a space. The router has already removed one level of
// escaping; a parameter that does not decode again is used as is, which
// keeps keys holding a literal "%" resolvable.
func objectKey(param string) string {
	key, err := url.QueryUnescape(param)
	if err != nil {
		return param
	}
	return key
}

// Messages renders one page of the message feed. Missing or invalid page
// numbers show the first page.
func (s *Site) Messages(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size := s.opts.PageSize

	// One extra row tells whether an older page exists.
	messages, err := s.messages.LatestMessages(r.Context(), size+1, (page-1)*size)
	if err != nil {
		s.serverError(w, r, err, "load messages")
		return
	}

	data := struct {
		PageData
		Messages []types.Message
		PrevPage int
		NextPage int
	}{
		PageData: s.newPageData("Berichten", "/berichten"),
		Messages: messages,
	}
	if len(messages) > size {
		data.Messages = messages[:size]
		data.NextPage = page + 1
	}
	if page > 1 {
		data.PrevPage = page - 1
	}
	s.render(w, r, http.StatusOK, "berichten", data)
}

// Message renders a single message.
func (s *Site) Message(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		s.NotFound(w, r)
		return
	}

	msg, err := s.messages.LoadMessage(r.Context(), id)
	if errors.Is(err, types.ErrNotFound) {
		s.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, r, err, "load message")
		return
	}

	data := struct {
		PageData
		Message types.Message
	}{
		PageData: s.newPageData(msg.Title, "/berichten"),
		Message:  msg,
	}
	s.render(w, r, http.StatusOK, "bericht", data)
}

// Stats lists how many objects every collection holds.
func (s *Site) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.objects.Stats(r.Context())
	if err != nil {
		s.serverError(w, r, err, "load collection stats")
		return
	}

	var total int64
	for _, c := range stats {
		total += c.Objects
	}
	data := struct {
		PageData
		Collections []types.CollectionStat
		Total       int64
	}{
		PageData:    s.newPageData("Statistieken", "/statistieken"),
		Collections: stats,
		Total:       total,
	}
	s.render(w, r, http.StatusOK, "statistieken", data)
}

// Info renders the static information page.
func (s *Site) Info(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "informatie", struct{ PageData }{s.newPageData("Informatie", "/informatie")})
}

// NotFound renders the 404 page.
func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", struct{ PageData }{s.newPageData("Pagina niet gevonden", "")})
}
