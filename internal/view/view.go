// Package view renders the HTML pages and carries one-shot flash
// messages (the toast equivalent) across redirects.
package view

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// View holds the parsed template set.
type View struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*View, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &View{tmpl: tmpl}, nil
}

// MustNew parses the templates or panics.
func MustNew() *View {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Data is the envelope every page template receives.
type Data struct {
	Title         string
	Authenticated bool
	UserName      string
	Flash         *Flash
	WatchKeys     string // comma-separated cache keys the page auto-refreshes on
	Content       interface{}
}

// Render writes the named page template.
func (v *View) Render(w http.ResponseWriter, status int, page string, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := v.tmpl.ExecuteTemplate(w, page, data); err != nil {
		log.Printf("[View] render %s: %v", page, err)
	}
}

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"` // success or error
	Title   string `json:"title"`
	Message string `json:"message"`
}

const flashCookie = "flash"

// SetFlash queues a flash for the next page view.
func SetFlash(w http.ResponseWriter, kind, title, message string) {
	payload, err := json.Marshal(Flash{Kind: kind, Title: title, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// TakeFlash pops the pending flash, if any.
func TakeFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	payload, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil
	}
	return &f
}
