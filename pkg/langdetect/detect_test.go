package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/linewidth/pkg/langdetect"
)

func TestKind_ByFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"src/app.ts", "typescript"},
		{"script.py", "python"},
		{"README.md", "markdown"},
		{"notes.txt", "text"},
		{"init.lua", "lua"},
		{"Dockerfile", "dockerfile"},
		{"Makefile", "makefile"},
		{"/abs/path/lib/util.py", "python"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.Kind(tt.path, nil))
		})
	}
}

func TestKind_FallsBackToContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go", langdetect.Kind("", []byte("package main\n\nfunc main() {}\n")))
	assert.Equal(t, "shell", langdetect.Kind("run", []byte("#!/bin/bash\necho hi\n")))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "shell"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go code", "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", "go"},
		{"python code", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"javascript code", "const x = () => { return 42; };\nconsole.log(x());", "javascript"},
		{"json object", `{"key": "value", "number": 123}`, "json"},
		{"yaml content", "key: value\nother: 123\nlist:\n  - item1\n  - item2", "yaml"},
		{"rust code", "fn main() {\n    println!(\"Hello, world!\");\n}", "rust"},
		{"sql query", "SELECT * FROM users WHERE id = 1;", "sql"},
		{"html", "<!DOCTYPE html>\n<html>\n<body></body>\n</html>", "html"},
		{"dockerfile", "FROM golang:1.25\nWORKDIR /app\nCOPY . .\nRUN go build", "dockerfile"},
		{"empty", "", "text"},
		{"whitespace only", "  \n\t\n", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	assert.Equal(t, "shell", langdetect.Detect(content))
}
