package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got, ok := bundle.Message("en-US", "predict.submit"); !ok || got != "Get Prediction" {
		t.Fatalf("Message(en-US, predict.submit) = %q, %t", got, ok)
	}
}

func TestEmbeddedLocalesTranslateEveryBaseKey(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			t.Fatalf("locale %s is missing keys %v", locale, missing)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("fr-FR", "predict.heading")
	if !ok || got != "Injury Risk Predictor" {
		t.Fatalf("Message(fr-FR) = %q, %t, want base locale copy", got, ok)
	}
	if _, ok := bundle.Message("en-US", "predict.missing"); ok {
		t.Fatal("expected unknown key to be absent")
	}
}

func TestDefaultRegistersPrinterMessages(t *testing.T) {
	Default()
	p := message.NewPrinter(language.BrazilianPortuguese)
	if got := p.Sprintf("predict.submit"); got != "Obter previsão" {
		t.Fatalf("pt-BR predict.submit = %q", got)
	}
	p = message.NewPrinter(language.AmericanEnglish)
	if got := p.Sprintf("predict.result.days", "7.3"); got != "7.3 days" {
		t.Fatalf("en-US predict.result.days = %q", got)
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/predict.yaml"), `locale: "en-US"
namespace: "predict"
messages:
  "core.bad": "nope"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected namespace prefix error")
	}
}

func TestLoadFromFSRejectsMismatchedLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "core.title": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected locale mismatch error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/core.yaml"), `locale: "pt-BR"
namespace: "core"
messages:
  "core.title": "x"
`)

	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}

func TestParseCatalogFileHandlesEscapes(t *testing.T) {
	parsed, err := parseCatalogFile([]byte(`# comment
locale: "en-US"
namespace: "core"
messages:
  "core.quote": "say \"hi\": now"
`))
	if err != nil {
		t.Fatalf("parseCatalogFile() error = %v", err)
	}
	if got := parsed.Messages["core.quote"]; got != `say "hi": now` {
		t.Fatalf("message = %q", got)
	}
	if _, err := parseCatalogFile([]byte(`stray: "line"`)); err == nil {
		t.Fatal("expected unknown field error")
	}
	if _, err := parseCatalogFile([]byte(`locale: "en-US"
namespace: "core"
messages: {}
`)); err == nil {
		t.Fatal("expected missing messages error")
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
