package category

import (
	"strings"
	"testing"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Category
	}{
		{"jpg", Images},
		{"JPG", Images},
		{".jpeg", Images},
		{"heic", Images},
		{"mp4", Videos},
		{"MOV", Videos},
		{"mp3", Audio},
		{"FLAC", Audio},
		{"pdf", Documents},
		{"Docx", Documents},
		{"go", Code},
		{"SWIFT", Code},
		{"zip", Archives},
		{".tar", Archives},
		{"xyz123", Other},
		{"", Other},
		{".", Other},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := FromExtension(tt.ext); got != tt.want {
				t.Errorf("FromExtension(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestFromExtensionCoversAllSets(t *testing.T) {
	// Every extension in a category's set must map back to that category,
	// in lower, upper, and dotted form.
	for c, exts := range extensionSets {
		for _, ext := range exts {
			if got := FromExtension(ext); got != c {
				t.Errorf("FromExtension(%q) = %v, want %v", ext, got, c)
			}
			upper := strings.ToUpper(ext)
			if got := FromExtension(upper); got != c {
				t.Errorf("FromExtension(%q) = %v, want %v", upper, got, c)
			}
			if got := FromExtension("." + ext); got != c {
				t.Errorf("FromExtension(%q) = %v, want %v", "."+ext, got, c)
			}
		}
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"/home/u/photo.JPG", Images},
		{"notes.md", Documents},
		{"archive.tar.gz", Archives},
		{"Makefile", Other},
		{"trailingdot.", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FromPath(tt.path); got != tt.want {
				t.Errorf("FromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	for _, c := range All {
		if got := Parse(c.String()); got != c {
			t.Errorf("Parse(%q) = %v, want %v", c.String(), got, c)
		}
	}
	if got := Parse("bogus"); got != Other {
		t.Errorf("Parse(bogus) = %v, want Other", got)
	}
}
