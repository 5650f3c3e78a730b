// Package category classifies filesystem entries by file extension.
//
// The mapping is a closed, static table built once at init time. Lookups are
// case-insensitive and never fail: anything the table does not recognize is
// [Other]. Directories are classified separately by their dominant child
// category (see the treemap package), so this package only deals with files.
package category

import "strings"

// Category is one of the eight fixed file-type groups.
type Category int

// Categories in declaration order. The order matters: directory roll-up
// breaks dominant-category ties by this order.
const (
	Images Category = iota
	Videos
	Audio
	Documents
	Code
	Archives
	System
	Other
)

// All lists every category in declaration order.
var All = []Category{Images, Videos, Audio, Documents, Code, Archives, System, Other}

var names = map[Category]string{
	Images:    "images",
	Videos:    "videos",
	Audio:     "audio",
	Documents: "documents",
	Code:      "code",
	Archives:  "archives",
	System:    "system",
	Other:     "other",
}

// String returns the lowercase name of the category.
func (c Category) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "other"
}

// Parse returns the category with the given lowercase name, or Other.
func Parse(s string) Category {
	for c, name := range names {
		if name == s {
			return c
		}
	}
	return Other
}

// Extension sets per category. "system" has no extension set of its own; it
// exists for callers that tag OS-owned paths directly.
var extensionSets = map[Category][]string{
	Images:    {"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp", "heic", "svg", "ico", "raw"},
	Videos:    {"mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "m4v", "mpg", "mpeg"},
	Audio:     {"mp3", "wav", "aac", "flac", "ogg", "m4a", "wma", "aiff", "opus"},
	Documents: {"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf", "odt", "pages", "numbers", "key", "md", "csv"},
	Code:      {"go", "swift", "c", "cpp", "h", "hpp", "py", "js", "ts", "java", "rb", "rs", "php", "sh", "html", "css", "json", "xml", "yaml", "yml", "toml", "sql"},
	Archives:  {"zip", "tar", "gz", "bz2", "xz", "7z", "rar", "dmg", "iso", "pkg"},
}

// byExtension is the immutable lookup table, built once from extensionSets.
var byExtension = buildTable()

func buildTable() map[string]Category {
	table := make(map[string]Category)
	for _, c := range All {
		for _, ext := range extensionSets[c] {
			table[ext] = c
		}
	}
	return table
}

// FromExtension maps a file extension to its category. The extension may be
// given with or without a leading dot and in any case. Unknown or empty
// extensions map to Other.
func FromExtension(ext string) Category {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if c, ok := byExtension[ext]; ok {
		return c
	}
	return Other
}

// FromPath classifies a path by its final extension.
func FromPath(path string) Category {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return Other
	}
	return FromExtension(path[i+1:])
}
