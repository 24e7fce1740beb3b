// Package web serves the server-rendered user interface.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/calculator"
	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"amount": calculator.FormatAmount,
	"statusClass": func(s calculator.BalanceStatus) string {
		switch s {
		case calculator.StatusYouOwe:
			return "red"
		case calculator.StatusOwesYou:
			return "green"
		default:
			return ""
		}
	},
}

// Handler renders the app and turns form posts into state transitions.
type Handler struct {
	app       *app.App
	templates *template.Template
}

// NewHandler creates a Handler for a.
func NewHandler(a *app.App) *Handler {
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
	return &Handler{
		app:       a,
		templates: tmpl,
	}
}

// Register mounts the UI routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /friends/toggle", h.ToggleAddFriend)
	mux.HandleFunc("POST /friends", h.AddFriend)
	mux.HandleFunc("POST /friends/{id}/select", h.SelectFriend)
	mux.HandleFunc("POST /split", h.SplitBill)
}

// Index renders the full page from current state.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	v, err := h.app.View(r.Context())
	if err != nil {
		slog.Error("Failed to build view", "error", err)
		http.Error(w, "failed to load friends", http.StatusInternalServerError)
		return
	}
	h.render(w, "index.html", v)
}

// ToggleAddFriend opens or closes the add-friend form.
func (h *Handler) ToggleAddFriend(w http.ResponseWriter, r *http.Request) {
	h.app.ToggleAddFriend()
	redirectHome(w, r)
}

// AddFriend submits the add-friend form.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	h.app.SetFriendName(r.PostFormValue("name"))
	h.app.SetFriendImage(r.PostFormValue("image"))

	if _, err := h.app.SubmitAddFriend(r.Context()); err != nil {
		slog.Error("AddFriend failed", "error", err)
		http.Error(w, "failed to add friend", http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}

// SelectFriend toggles the selection of the friend in the path.
func (h *Handler) SelectFriend(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.app.SelectFriend(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "friend not found", http.StatusNotFound)
			return
		}
		slog.Error("SelectFriend failed", "friend_id", id, "error", err)
		http.Error(w, "failed to select friend", http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}

// SplitBill submits the split-bill form. Field values the form refuses are
// dropped silently; the page shows what was kept.
func (h *Handler) SplitBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	h.app.SetBillTotal(r.PostFormValue("bill_total"))
	h.app.SetUserPaid(r.PostFormValue("user_paid"))
	if payer := r.PostFormValue("payer"); payer != "" {
		h.app.SetPayer(models.Payer(payer))
	}

	if _, err := h.app.SubmitSplitBill(r.Context()); err != nil {
		slog.Error("SplitBill failed", "error", err)
		http.Error(w, "failed to split bill", http.StatusInternalServerError)
		return
	}
	redirectHome(w, r)
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("Template render failed", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
