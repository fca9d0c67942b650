package normalize

import "testing"

func TestNumber(t *testing.T) {
	cases := map[string]string{
		"4012 0010 3714 1112":   "4012001037141112",
		"4012-0010-3714-1112":   "4012001037141112",
		"  3782.822463.10005\n": "378282246310005",
		"4012\t0010":            "40120010",
		"":                      "",
		"4012 abcd":             "4012abcd",
	}

	for input, expected := range cases {
		got := Number(input)
		if got != expected {
			t.Fatalf("Number(%q) expected %q, got %q", input, expected, got)
		}
	}
}

func TestApplyOptions(t *testing.T) {
	res := Apply("4012/0010-37", Options{Separators: "/"})
	if res.Normalized != "40120010-37" {
		t.Fatalf("expected custom separators only, got %q", res.Normalized)
	}
	if res.Raw != "4012/0010-37" {
		t.Fatalf("expected raw input kept, got %q", res.Raw)
	}

	res = Apply("4012\t0010", Options{KeepTabs: true})
	if res.Normalized != "4012\t0010" {
		t.Fatalf("expected tab kept, got %q", res.Normalized)
	}
}
