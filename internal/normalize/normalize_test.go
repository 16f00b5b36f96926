package normalize

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"trims", "  Hello  ", "Hello"},
		{"collapses space runs", "a  \t b", "a b"},
		{"crlf to lf", "a\r\nb", "a\nb"},
		{"nbsp", "a b", "a b"},
		{"bom and zero width", "\uFEFFa​b", "ab"},
		{"curly quotes", "“Hello”", "Hello"},
		{"wrapping quotes", `"Hello"`, "Hello"},
		{"wrapping single quotes", "'Hello'", "Hello"},
		{"nested wrapping quotes", `"'Hello'"`, "Hello"},
		{"asymmetric quotes kept", `"Hello'`, `"Hello'`},
		{"lone quote", `"`, `"`},
		{"empty", "", ""},
		{"trailing space", "Привет ", "Привет"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in)
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "  a  b ", `"'quoted'"`, "'''x'''", "\uFEFF “s” ",
		"줄1\r\n줄2", "a  b", `" spaced "`,
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCanonicalKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello world"},
		{"  HELLO\nWORLD ", "hello world"},
		{"ＨＥＬＬＯ", "hello"}, // fullwidth folds to ASCII under NFKC
		{"안녕 하세요", "안녕 하세요"},
	}
	for _, tc := range cases {
		if got := CanonicalKey(tc.in); got != tc.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"English", "english"},
		{" Main Module ", "mainmodule"},
		{"한국어(KO)", "한국어ko"},
		{"RU_Match", "rumatch"},
	}
	for _, tc := range cases {
		if got := Header(tc.in); got != tc.want {
			t.Errorf("Header(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
