// Package langdetect identifies the language of a document so the width
// indicator can skip excluded kinds and pick the right comment marker.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// classifierCandidates limits the Bayesian classifier to languages that
// commonly appear without a telling file name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Kind returns the lowercased language name of a document.
//
// With a path, enry decides from the file name, extension and content
// heuristics. Without one, or when enry gives up, Detect looks at the content
// alone. Returns Text when nothing matches.
func Kind(path string, content []byte) string {
	if path != "" {
		if lang := enry.GetLanguage(filepath.Base(path), content); lang != "" {
			return normalize(lang)
		}
	}
	return Detect(content)
}

// Detect returns the language of content alone.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, p := range patterns {
		if p.match(content) {
			return p.kind
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

type pattern struct {
	kind  string
	match func(content []byte) bool
}

// patterns are checked in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{"go", func(c []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(c), []byte("package "))
	}},
	{"python", func(c []byte) bool {
		s := string(c)
		return (strings.Contains(s, "def ") && strings.Contains(s, "):")) ||
			strings.Contains(s, "__name__") ||
			strings.HasPrefix(strings.TrimSpace(s), "from ")
	}},
	{"html", func(c []byte) bool {
		lower := bytes.ToLower(c)
		return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(c []byte) bool {
		trimmed := bytes.TrimSpace(c)
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(c []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(c), []byte("FROM ")) ||
			(bytes.Contains(c, []byte("WORKDIR ")) && bytes.Contains(c, []byte("COPY ")))
	}},
	{"sql", func(c []byte) bool {
		upper := strings.ToUpper(strings.TrimSpace(string(c)))
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c []byte) bool {
		return bytes.Contains(c, []byte("fn main()")) || bytes.Contains(c, []byte("println!"))
	}},
	{"javascript", func(c []byte) bool {
		s := string(c)
		return strings.Contains(s, "=>") || strings.Contains(s, "console.log") || strings.Contains(s, "const ")
	}},
	{"yaml", looksLikeYAML},
}

// looksLikeYAML counts "key: value" lines and list items.
func looksLikeYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

func normalize(lang string) string {
	return strings.ToLower(lang)
}
