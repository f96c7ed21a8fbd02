package util

import (
	"regexp"
	"testing"
)

func TestGenerateUUID_Format(t *testing.T) {
	u := GenerateUUID()
	if u == "" {
		t.Fatal("expected non-empty UUID")
	}
	// simple regex for UUID v4 format
	r := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	if !r.MatchString(u) {
		t.Fatalf("UUID %s does not match v4 format", u)
	}
}

func TestGenerateOrderID_Format(t *testing.T) {
	id := GenerateOrderID()
	if !regexp.MustCompile(`^ORD-[0-9A-F]{8}$`).MatchString(id) {
		t.Fatalf("unexpected order id %s", id)
	}
}

func TestGenerateLineID(t *testing.T) {
	cases := []struct {
		prefix string
		re     string
	}{
		{"bag", `^bag-[0-9a-f]{8}$`},
		{"", `^[0-9a-f]{8}$`},
	}
	for _, tc := range cases {
		id := GenerateLineID(tc.prefix)
		if !regexp.MustCompile(tc.re).MatchString(id) {
			t.Fatalf("prefix %q: unexpected id %s", tc.prefix, id)
		}
	}

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := GenerateLineID("bag")
		if seen[id] {
			t.Fatalf("duplicate id %s after %d draws", id, i)
		}
		seen[id] = true
	}
}
