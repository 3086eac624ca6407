package util

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple lowercase", input: "Shopify", want: "shopify"},
		{name: "corporate suffix", input: "Square Inc", want: "square"},
		{name: "dotted suffix", input: "Lightspeed Ltd.", want: "lightspeed"},
		{name: "double suffix", input: "Acme Pty Ltd", want: "acme"},
		{name: "dot com", input: "Calendly.com", want: "calendly"},
		{name: "marketing suffix", input: "square POS", want: "square"},
		{name: "software suffix", input: "Workshop Software", want: "workshop"},
		{name: "trademark glyph", input: "Mailchimp™", want: "mailchimp"},
		{name: "whitespace collapse", input: "  Google   Analytics  ", want: "google analytics"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "suffix alone survives", input: "Inc", want: "inc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeName(tc.input); got != tc.want {
				t.Fatalf("NormalizeName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeNameManyToOne(t *testing.T) {
	variants := []string{"square POS", "Square POS", "SQUARE  POS"}
	want := NormalizeName(variants[0])
	for _, v := range variants {
		if got := NormalizeName(v); got != want {
			t.Fatalf("variant %q normalized to %q, want %q", v, got, want)
		}
	}
}

func TestContainsToken(t *testing.T) {
	if !ContainsToken("We use ServiceM8 for dispatch", "servicem8") {
		t.Fatal("expected case-insensitive match")
	}
	if ContainsToken("We use Xero", "MYOB") {
		t.Fatal("unexpected match")
	}
}
