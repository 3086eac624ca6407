package pipeline

import (
	"reflect"
	"testing"

	"growthlens/internal"
	"growthlens/internal/util"
)

func TestDedupNames(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "first occurrence casing wins", input: []string{"Shopify", "shopify", "SHOPIFY"}, want: []string{"Shopify"}},
		{name: "suffix variants collapse", input: []string{"Square", "square POS", "Square Inc"}, want: []string{"Square"}},
		{name: "order preserved", input: []string{"Xero", "MYOB", "xero"}, want: []string{"Xero", "MYOB"}},
		{name: "blank entries dropped", input: []string{"", "  ", "Stripe"}, want: []string{"Stripe"}},
		{name: "empty input yields empty slice", input: []string{}, want: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DedupNames(tc.input)
			if got == nil {
				t.Fatal("result must never be nil")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestDedupNamesNoEqualKeysSurvive(t *testing.T) {
	input := []string{"Square", "square POS", "WordPress", "Stripe", "stripe", "Mailchimp™", "Mailchimp"}
	got := DedupNames(input)

	seen := map[string]struct{}{}
	for _, name := range got {
		key := util.NormalizeName(name)
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate normalized key %q in %v", key, got)
		}
		seen[key] = struct{}{}
	}

	// Every key present in the input appears at least once in the output.
	for _, name := range input {
		key := util.NormalizeName(name)
		if _, ok := seen[key]; !ok {
			t.Fatalf("key %q lost during dedup", key)
		}
	}
}

func TestDedupNamesWithProvenance(t *testing.T) {
	names := []string{"Square", "WordPress", "square POS"}
	provenance := []internal.Provenance{internal.ProvenanceSector, internal.ProvenanceAudit, internal.ProvenanceAudit}

	gotNames, gotProv := DedupNamesWithProvenance(names, provenance)
	if !reflect.DeepEqual(gotNames, []string{"Square", "WordPress"}) {
		t.Fatalf("unexpected names %v", gotNames)
	}
	if !reflect.DeepEqual(gotProv, []internal.Provenance{internal.ProvenanceSector, internal.ProvenanceAudit}) {
		t.Fatalf("unexpected provenance %v", gotProv)
	}
}
