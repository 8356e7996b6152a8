package shellint

import "testing"

func TestParseSequence(t *testing.T) {
	seq, ok := ParseSequence("D;1")
	if !ok || seq.Code != CommandComplete || seq.Arg(0) != "1" || seq.Arg(1) != "" {
		t.Fatalf("D;1 parsed as %+v %v", seq, ok)
	}
	seq, ok = ParseSequence(`P;Cwd=/tmp/a\x3bb=c`)
	if !ok || seq.Properties()["Cwd"] != "/tmp/a;b=c" {
		t.Fatalf("property parsed as %+v", seq.Properties())
	}
	for _, p := range []string{"", "Z", "AB", "633", "X;1"} {
		if _, ok := ParseSequence(p); ok {
			t.Fatalf("%q should not parse", p)
		}
	}
	for _, c := range Codes {
		if _, ok := ParseSequence(string(rune(c))); !ok {
			t.Fatalf("%v should parse", c)
		}
	}
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`echo a\x3b b`: "echo a; b",
		`a\\b`:         `a\b`,
		`bad\xZZ`:      `bad\xZZ`,
		`tail\`:        `tail\`,
		`line\x0a2`:    "line\n2",
	}
	for in, want := range cases {
		if got := Unescape(in); got != want {
			t.Fatalf("Unescape(%q) = %q, want %q", in, got, want)
		}
	}
	raw := "for i in 1 2; do echo \\$i\n"
	if got := Unescape(Escape(raw)); got != raw {
		t.Fatalf("escape round trip = %q", got)
	}
}
