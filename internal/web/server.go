package web

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"listkeep/internal/lists"
	"listkeep/internal/store"

	"github.com/starfederation/datastar-go/datastar"
)

//go:embed templates/*.html static/*.css
var assetsFS embed.FS

type ServerConfig struct {
	Addr string
	Dir  string
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	acc  lists.Accessor
	bc   *listBroadcaster
}

func NewServer(cfg ServerConfig) (*Server, error) {
	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:  cfg,
		tmpl: tmpl,
		acc:  lists.Accessor{Store: store.Store{Dir: cfg.Dir}},
	}
	srv.bc = newListBroadcaster(cfg.Dir)
	go srv.bc.watchLoop()
	return srv, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) Close() { s.bc.Stop() }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /static/app.css", s.handleAppCSS)
	mux.HandleFunc("GET /lists/{listName}/events", s.handleListEvents)
	mux.HandleFunc("POST /items", s.handleItemAdd)
	mux.HandleFunc("POST /delete", s.handleItemDelete)
	mux.HandleFunc("GET /{listName}", s.handleList)
	mux.HandleFunc("GET /{$}", s.handleHome)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = io.WriteString(w, `{"ok":true,"ts":"`+time.Now().UTC().Format(time.RFC3339)+`"}`)
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	b, err := assetsFS.ReadFile("static/app.css")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(b)
}

// listPath maps a list title back to its page URL. The default list lives at
// the site root, mirroring the original route layout.
func listPath(title string) string {
	if title == "" || title == lists.DefaultListName {
		return "/"
	}
	return "/" + url.PathEscape(title)
}

type listVM struct {
	Title     string
	Items     []lists.Entry
	Known     []string
	StreamURL string
}

func (s *Server) renderListPage(w http.ResponseWriter, r *http.Request, name string) {
	v, err := s.acc.Resolve(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	known := []string{lists.DefaultListName}
	if all, err := (store.Store{Dir: s.cfg.Dir}).AllLists(r.Context()); err == nil {
		for _, l := range all {
			known = append(known, l.Name)
		}
	}

	vm := listVM{
		Title:     v.Title,
		Items:     v.Items,
		Known:     known,
		StreamURL: "/lists/" + url.PathEscape(v.Title) + "/events",
	}
	s.writeHTMLTemplate(w, "list.html", vm)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderListPage(w, r, lists.DefaultListName)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("listName")
	if strings.TrimSpace(name) == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderListPage(w, r, name)
}

func (s *Server) handleItemAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemName := strings.TrimSpace(r.PostFormValue("newItem"))
	listName := lists.Normalize(r.PostFormValue("list"))

	if itemName == "" {
		// Empty submission: nothing to write, bounce back to the list.
		http.Redirect(w, r, listPath(listName), http.StatusSeeOther)
		return
	}
	if _, err := s.acc.AddItem(r.Context(), listName, itemName); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.bc.notify(normalizedOrDefault(listName))
	http.Redirect(w, r, listPath(listName), http.StatusSeeOther)
}

func (s *Server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemID := strings.TrimSpace(r.PostFormValue("checkbox"))
	listName := lists.Normalize(r.PostFormValue("listName"))

	if itemID != "" {
		if err := s.acc.DeleteItem(r.Context(), listName, itemID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		s.bc.notify(normalizedOrDefault(listName))
	}
	http.Redirect(w, r, listPath(listName), http.StatusSeeOther)
}

func normalizedOrDefault(name string) string {
	n := lists.Normalize(name)
	if n == "" {
		return lists.DefaultListName
	}
	return n
}

// handleListEvents streams re-rendered item fragments to the browser whenever
// the list changes, as datastar element patches over SSE.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	name := normalizedOrDefault(r.PathValue("listName"))

	render := func() (string, error) {
		v, err := s.acc.Resolve(r.Context(), name)
		if err != nil {
			return "", err
		}
		return s.renderTemplate("list_items.html", listVM{Title: v.Title, Items: v.Items})
	}

	sse := datastar.NewSSE(w, r)

	h := s.bc.hubFor(name)
	ch, cancel := h.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			html, err := render()
			if err != nil {
				continue
			}
			if strings.TrimSpace(html) == "" {
				continue
			}
			_ = sse.PatchElements(html,
				datastar.WithSelector("#list-items"),
				datastar.WithMode(datastar.ElementPatchModeOuter))
		}
	}
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}
