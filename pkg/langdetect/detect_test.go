package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/doclex/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "java class",
			content:  "public class HelloWorld {\n    public static void main(String... args) {\n    }\n}",
			expected: "java",
		},
		{
			name:     "java statement",
			content:  "System.out.println(\"Hello World\");",
			expected: "java",
		},
		{
			name:     "java package line",
			content:  "package com.example;\n\nimport java.util.List;",
			expected: "java",
		},
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "go",
		},
		{
			name:     "go short declaration",
			content:  "lex := lexer.New(body)",
			expected: "go",
		},
		{
			name:     "python code",
			content:  "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()",
			expected: "python",
		},
		{
			name:     "javascript code",
			content:  "const x = () => { return 42; };\nconsole.log(x());",
			expected: "javascript",
		},
		{
			name:     "json object",
			content:  `{"key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml content",
			content:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			expected: "yaml",
		},
		{
			name:     "rust code",
			content:  "fn main() {\n    println!(\"Hello, world!\");\n}",
			expected: "rust",
		},
		{
			name:     "sql query",
			content:  "SELECT * FROM users WHERE id = 1;",
			expected: "sql",
		},
		{
			name:     "html fragment",
			content:  "<ul>\n  <li>one</li>\n</ul>",
			expected: "html",
		},
		{
			name:     "plain text fallback",
			content:  "just some text without any code patterns",
			expected: "text",
		},
		{
			name:     "whitespace only",
			content:  " \n\t",
			expected: "text",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langdetect.Detect([]byte(testCase.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bash", langdetect.Detect([]byte("#!/bin/bash\ndef foo():\n    pass")))
}

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
	}{
		{"java", "java"},
		{"Java title=\"Example\"", "java"},
		{"  sh ", "bash"},
		{"js", "javascript"},
		{"golang", "go"},
		{"", ""},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, langdetect.FromInfo(testCase.info), "info %q", testCase.info)
	}
}
