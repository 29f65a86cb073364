package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   language.Tag
		wantOK bool
	}{
		{in: "en-US", want: language.AmericanEnglish, wantOK: true},
		{in: "pt-BR", want: language.BrazilianPortuguese, wantOK: true},
		{in: "pt", want: language.BrazilianPortuguese, wantOK: true},
		{in: "ja", want: language.AmericanEnglish, wantOK: false},
		{in: "not a tag!", want: language.AmericanEnglish, wantOK: false},
		{in: "", want: language.AmericanEnglish, wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) = %v, %t, want %v, %t", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTagsPrefersFirstSupported(t *testing.T) {
	t.Parallel()

	got := MatchTags([]language.Tag{language.Japanese, language.MustParse("pt-BR"), language.English})
	if got != language.BrazilianPortuguese {
		t.Fatalf("MatchTags() = %v, want pt-BR", got)
	}
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %v, want default", got)
	}
}

func TestPrinterUsesEmbeddedCatalog(t *testing.T) {
	t.Parallel()

	if got := Printer(language.BrazilianPortuguese).Sprintf("core.title"); got != "Risco de Lesão do Jogador" {
		t.Fatalf("pt-BR core.title = %q", got)
	}
	if got := Printer(language.AmericanEnglish).Sprintf("core.title"); got != "Player Injury Risk" {
		t.Fatalf("en-US core.title = %q", got)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.Japanese
	if DefaultTag() != language.AmericanEnglish {
		t.Fatal("SupportedTags leaked internal slice")
	}
}
