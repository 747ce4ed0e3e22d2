package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple---separators__here", "multiple-separators-here"},
		{"MixedCASE Title 2026", "mixedcase-title-2026"},
		{"punctuation! still? works.", "punctuation-still-works"},
		{"", ""},
		{"---", ""},
	}

	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
