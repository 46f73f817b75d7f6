package publish

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{title: "¡Hola Mundo! 2024", want: "hola-mundo-2024"},
		{title: "Ana & Luis", want: "ana-luis"},
		{title: "  José y María  ", want: "jose-y-maria"},
		{title: "Ça va --- très bien", want: "ca-va-tres-bien"},
		{title: "Zoë + Chloé's Wedding!!!", want: "zoe-chloe-s-wedding"},
		{title: "---", want: ""},
		{title: "", want: ""},
		{title: "日本", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			if got := Slugify(tc.title); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestSlugifyTruncatesAndRetrims(t *testing.T) {
	title := strings.Repeat("a", 49) + " b" + strings.Repeat("c", 20)
	got := Slugify(title)
	if len(got) > MaxSlugLength {
		t.Fatalf("slug longer than %d: %d", MaxSlugLength, len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug must not end with a hyphen: %q", got)
	}
	if got != strings.Repeat("a", 49) {
		t.Fatalf("unexpected truncated slug %q", got)
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	if Slugify("Boda de Ana") != Slugify("Boda de Ana") {
		t.Fatal("identical titles must yield identical slugs")
	}
}
