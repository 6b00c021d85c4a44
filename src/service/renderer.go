package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/peakyminds/challenge-seo/src/domain"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

type RendererConfig struct {
	// AppBaseURL is the application origin pages redirect to
	AppBaseURL string
	SiteName   string
}

// Renderer turns challenges into redirecting SEO documents
type Renderer struct {
	templates  *template.Template
	appBaseURL string
	siteName   string
}

type challengeView struct {
	Title       string
	Description string
	ImageURL    string
	RedirectURL string
	SiteName    string
}

type statusView struct {
	Heading  string
	Message  string
	HomeURL  string
	SiteName string
}

func NewRenderer(config RendererConfig) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates:  tmpl,
		appBaseURL: strings.TrimRight(config.AppBaseURL, "/"),
		siteName:   config.SiteName,
	}, nil
}

// RedirectURL returns the canonical application URL for slug
func (r *Renderer) RedirectURL(slug string) string {
	return r.appBaseURL + "/c/" + url.PathEscape(slug)
}

// Render produces the landing document for a challenge
func (r *Renderer) Render(challenge domain.Challenge) ([]byte, error) {
	view := challengeView{
		Title:       challenge.Title,
		Description: challenge.Description,
		ImageURL:    challenge.ImageURL,
		RedirectURL: r.RedirectURL(challenge.Slug),
		SiteName:    r.siteName,
	}
	return r.execute("challenge.html.tmpl", view)
}

func (r *Renderer) RenderNotFound() ([]byte, error) {
	return r.execute("status.html.tmpl", statusView{
		Heading:  "Challenge not found",
		Message:  "This challenge does not exist or is no longer available.",
		HomeURL:  r.appBaseURL,
		SiteName: r.siteName,
	})
}

func (r *Renderer) RenderUnavailable() ([]byte, error) {
	return r.execute("status.html.tmpl", statusView{
		Heading:  "Challenge temporarily unavailable",
		Message:  "We could not load this challenge right now. Please try again shortly.",
		HomeURL:  r.appBaseURL,
		SiteName: r.siteName,
	})
}

func (r *Renderer) execute(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
