package index

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"lowercases", "The MATRIX", []string{"matrix"}},
		{"splits on punctuation", "sci-fi, action!", []string{"sci", "fi", "action"}},
		{"drops stop words", "the lord of the rings", []string{"lord", "rings"}},
		{"keeps digits", "blade runner 2049", []string{"blade", "runner", "2049"}},
		{"empty input", "", nil},
		{"only stop words", "the and of", nil},
		{"whitespace only", "  \t\n ", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.text)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"The Matrix", "the matrix"},
		{"  THE   Matrix  ", "the matrix"},
		{"Blade\tRunner", "blade runner"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.title); got != tc.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
