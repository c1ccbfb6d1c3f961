package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/reporting"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// Handlers holds the HTTP handler methods for the plan browser.
type Handlers struct {
	store PlanStore
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store PlanStore) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandlePlans returns the saved plans, newest first.
func (h *Handlers) HandlePlans(w http.ResponseWriter, _ *http.Request) {
	plans, err := h.store.ListPlans()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// HandlePlanDetail returns one transcript together with its text summary.
func (h *Handlers) HandlePlanDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	t, ok := h.lookup(w, r, name, writeError)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, PlanDetail{
		Name:       name,
		Transcript: t,
		Summary:    reporting.Summary(t),
	})
}

// HandlePlanPage renders one plan as an HTML page.
func (h *Handlers) HandlePlanPage(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r, r.PathValue("name"), writeHTMLError)
	if !ok {
		return
	}
	page, err := reporting.PlanHTML(t)
	if err != nil {
		writeHTMLError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeHTML(w, http.StatusOK, page)
}

var indexTemplate = template.Must(template.New("index").Parse(`<h1>💾 सहेजी गई योजनाएँ</h1>
{{if .}}<table>
<thead><tr><th>योजना</th><th>दिनांक</th><th>आकार (KB)</th></tr></thead>
<tbody>
{{range .}}<tr><td><a href="/plans/{{.Name}}">{{.Name}}</a></td><td>{{.DateReadable}}</td><td>{{printf "%.2f" .SizeKB}}</td></tr>
{{end}}</tbody>
</table>{{else}}<p>अभी कोई योजना सहेजी नहीं गई है।</p>{{end}}
`))

// HandleIndex renders the list of saved plans as an HTML page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeHTMLError(w, http.StatusNotFound, "page not found")
		return
	}
	plans, err := h.store.ListPlans()
	if err != nil {
		writeHTMLError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var body bytes.Buffer
	if err := indexTemplate.Execute(&body, plans); err != nil {
		writeHTMLError(w, http.StatusInternalServerError, err.Error())
		return
	}
	page, err := reporting.Page("vitta - सहेजी गई योजनाएँ", template.HTML(body.String())) //nolint:gosec // produced by html/template
	if err != nil {
		writeHTMLError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeHTML(w, http.StatusOK, page)
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request, name string, fail func(http.ResponseWriter, int, string)) (*models.Transcript, bool) {
	if name == "" {
		fail(w, http.StatusBadRequest, "plan name is required")
		return nil, false
	}
	t, err := h.store.GetPlan(name)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			fail(w, http.StatusNotFound, "plan not found")
		} else {
			slog.Warn("Failed to load plan", "name", name, "path", r.URL.Path, "error", err)
			fail(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return t, true
}

// RegisterRoutes registers all plan browser routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store PlanStore) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/plans", h.HandlePlans)
	mux.HandleFunc("GET /api/plans/{name}", h.HandlePlanDetail)
	mux.HandleFunc("GET /plans/{name}", h.HandlePlanPage)
	mux.HandleFunc("GET /", h.HandleIndex)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}

func writeHTML(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(page)) //nolint:errcheck
}

func writeHTMLError(w http.ResponseWriter, code int, msg string) {
	page, err := reporting.Page(http.StatusText(code), template.HTML("<h1>"+template.HTMLEscapeString(http.StatusText(code))+"</h1>\n<p>"+template.HTMLEscapeString(msg)+"</p>")) //nolint:gosec
	if err != nil {
		http.Error(w, msg, code)
		return
	}
	writeHTML(w, code, page)
}
