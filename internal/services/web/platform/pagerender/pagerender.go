// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/injuryrisk/internal/services/web/platform/httpx"
	webi18n "github.com/louisbranch/injuryrisk/internal/services/web/platform/i18n"
	webtemplates "github.com/louisbranch/injuryrisk/internal/services/web/templates"
	"golang.org/x/text/language"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	StatusCode int
	Lang       language.Tag
	Copy       webi18n.PageCopy
	Fragment   templ.Component
}

// Shell holds the layout settings shared by every full page.
type Shell struct {
	HTMXScriptURL string
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage writes the fragment alone for HTMX requests and wrapped in the
// document layout otherwise.
func (s Shell) WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}
	if httpx.IsHTMXRequest(r) {
		return WriteFragment(w, r, page.StatusCode, fragment)
	}

	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	layout := webtemplates.Layout(webtemplates.LayoutData{
		Lang:          page.Lang.String(),
		Copy:          page.Copy,
		Languages:     webi18n.LanguageOptions(page.Copy.Localizer(), page.Lang),
		CurrentPath:   path,
		HTMXScriptURL: s.HTMXScriptURL,
	})
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	return write(w, page.StatusCode, func(buf *bytes.Buffer) error {
		return layout.Render(ctx, buf)
	})
}

// WriteFragment writes a component without the document layout.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, fragment templ.Component) error {
	if w == nil {
		return nil
	}
	if fragment == nil {
		fragment = emptyComponent{}
	}
	ctx := httpx.RequestContext(r)
	return write(w, statusCode, func(buf *bytes.Buffer) error {
		return fragment.Render(ctx, buf)
	})
}

func write(w http.ResponseWriter, statusCode int, render func(*bytes.Buffer) error) error {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
