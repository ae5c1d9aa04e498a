// Package web renders the HTML shell served at the site root.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

const (
	DefaultTitle       = "毛孩子AI翻译官"
	DefaultDescription = "上传一张猫的图片"
	defaultLang        = "en"
	fontClass          = "inter"
)

//go:embed templates/*.html content/*.md
var assets embed.FS

// UploadForm describes where the page's upload form posts to.
type UploadForm struct {
	Action string
	Field  string
}

// Page is the data the document shell and the layout are rendered with.
// Content is trusted HTML placed inside the layout.
type Page struct {
	Lang        string
	Title       string
	Description string
	BodyClass   string
	Content     template.HTML
	Upload      *UploadForm
}

type Renderer struct {
	tmpl   *template.Template
	logger *zap.SugaredLogger
	index  Page
}

func NewRenderer(logger *zap.SugaredLogger, uploadAction, uploadField string) (*Renderer, error) {
	tmpl, err := template.ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	intro, err := renderMarkdown("content/index.md")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		tmpl:   tmpl,
		logger: logger,
		index: NewPage(intro, &UploadForm{
			Action: uploadAction,
			Field:  uploadField,
		}),
	}, nil
}

// NewPage wraps content with the default page metadata.
func NewPage(content template.HTML, upload *UploadForm) Page {
	return Page{
		Lang:        defaultLang,
		Title:       DefaultTitle,
		Description: DefaultDescription,
		BodyClass:   fontClass,
		Content:     content,
		Upload:      upload,
	}
}

func (r *Renderer) Render(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "document", p)
}

func (r *Renderer) Index(w http.ResponseWriter, req *http.Request) {
	var buf bytes.Buffer
	if err := r.Render(&buf, r.index); err != nil {
		r.logger.Errorw("render index", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// renderMarkdown converts an embedded markdown file. Raw HTML in the
// source is dropped by goldmark's default renderer.
func renderMarkdown(name string) (template.HTML, error) {
	src, err := assets.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
