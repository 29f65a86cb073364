package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/injuryrisk/internal/services/web/platform/i18n"
	"github.com/louisbranch/injuryrisk/internal/services/web/routepath"
)

// DefaultHTMXScriptURL is the htmx build loaded by the layout.
const DefaultHTMXScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// LayoutData carries the page chrome.
type LayoutData struct {
	Lang          string
	Copy          webi18n.PageCopy
	Languages     []webi18n.LanguageOption
	CurrentPath   string
	HTMXScriptURL string
}

// Layout renders the full HTML document around its children.
func Layout(data LayoutData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		script := data.HTMXScriptURL
		if script == "" {
			script = DefaultHTMXScriptURL
		}
		lang := data.Lang
		if lang == "" {
			lang = "en-US"
		}

		h := &htmlWriter{w: w}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(data.Copy.Title)
		h.raw("</title><meta name=\"description\"")
		h.attr("content", data.Copy.Description)
		h.raw("><link rel=\"stylesheet\"")
		h.attr("href", routepath.Static("app.css"))
		h.raw("><script defer")
		h.attr("src", script)
		h.raw("></script></head><body><header class=\"site-header\"><span class=\"site-title\">")
		h.text(data.Copy.Title)
		h.raw("</span>")
		writeLanguageSwitcher(h, data)
		h.raw("</header><main id=\"main\">")
		if h.err != nil {
			return h.err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		h.raw("</main></body></html>")
		return h.err
	})
}

func writeLanguageSwitcher(h *htmlWriter, data LayoutData) {
	if len(data.Languages) == 0 {
		return
	}
	path := data.CurrentPath
	if path == "" {
		path = routepath.Root
	}
	h.raw("<nav class=\"language\"")
	h.attr("aria-label", data.Copy.Language)
	h.raw("><ul>")
	for _, option := range data.Languages {
		h.raw("<li><a")
		h.attr("href", path+"?"+webi18n.LangParam+"="+option.Tag)
		h.attr("hreflang", option.Tag)
		if option.Active {
			h.raw(" aria-current=\"true\"")
		}
		h.raw(">")
		h.text(option.Label)
		h.raw("</a></li>")
	}
	h.raw("</ul></nav>")
}
