package services

import "testing"

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://example.com", "example.com"},
		{"http://example.com", "example.com"},
		{"https://www.example.com", "example.com"},
		{"example.com", "example.com"},
		{"www.example.com", "example.com"},
		{"https://Example.COM/Path", "example.com/path"},
		{"https://example.com/", "example.com"},
		{"https://example.com/path/", "example.com/path"},
		{"https://example.com?utm_source=x", "example.com"},
		{"https://example.com/path?a=1&b=2", "example.com/path"},
		{"https://example.com/path#section", "example.com/path"},
		{"  https://example.com  ", "example.com"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeURL(tc.raw); got != tc.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

// All spellings of the same site must collapse to one value, since the
// duplicate-launch rule compares normalized URLs.
func TestNormalizeURLEquivalence(t *testing.T) {
	variants := []string{
		"https://www.example.com/path?x=1",
		"http://example.com/path",
		"example.com/path/",
		"WWW.EXAMPLE.COM/path#top",
	}

	want := NormalizeURL(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeURL(v); got != want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", v, got, want)
		}
	}
}
