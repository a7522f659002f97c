package models

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Already-slugged", "already-slugged"},
		{"Go 1.22 Release Notes", "go-1-22-release-notes"},
		{"!!!", ""},
		{"", ""},
		{"MiXeD CaSe", "mixed-case"},
	}
	for _, c := range cases {
		if got := Slugify(c.title); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.title, got, c.want)
		}
	}
}

func TestProjectMediaCorrupt(t *testing.T) {
	if (ProjectMedia{URL: "https://cdn/x.png", RemoteID: "x"}).Corrupt() {
		t.Error("well-formed media reported corrupt")
	}
	if !(ProjectMedia{URL: "", RemoteID: "x"}).Corrupt() {
		t.Error("media without URL not reported corrupt")
	}
	if !(ProjectMedia{URL: "https://cdn/x.png", RemoteID: ""}).Corrupt() {
		t.Error("media without remote id not reported corrupt")
	}
}
