// Package langdetect guesses the language of code samples embedded in
// documentation comments. It is used when a code block has no info string.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language identifiers returned by Detect.
const (
	LangJava       = "java"
	LangGo         = "go"
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangHTML       = "html"
	LangSQL        = "sql"
	LangRust       = "rust"
	LangBash       = "bash"
	LangText       = "text"
)

// classifierCandidates limits the enry classifier to languages that show up
// in API documentation samples.
var classifierCandidates = []string{
	"Java", "Go", "Kotlin", "Scala", "C", "C++", "C#", "Python", "Shell",
	"JavaScript", "TypeScript", "Rust", "SQL", "JSON", "YAML", "XML", "HTML",
}

// sample is a code block prepared once for all pattern checks.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
}

// detectors are tried in order; the first match wins. Java comes first
// because its package and import lines also satisfy the Go and Python checks.
var detectors = []struct {
	lang  string
	match func(s sample) bool
}{
	{LangJava, isJava},
	{LangGo, isGo},
	{LangPython, isPython},
	{LangHTML, isHTML},
	{LangJSON, isJSON},
	{LangSQL, isSQL},
	{LangRust, isRust},
	{LangJavaScript, isJavaScript},
	{LangYAML, isYAML},
}

// Detect returns the detected language for code content, or "text" when
// nothing matches with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	smp := sample{raw: content, trimmed: bytes.TrimSpace(content), text: string(content)}
	for _, det := range detectors {
		if det.match(smp) {
			return det.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// infoAliases maps common fence info words to Detect's identifiers.
var infoAliases = map[string]string{
	"sh":     LangBash,
	"shell":  LangBash,
	"zsh":    LangBash,
	"js":     LangJavaScript,
	"py":     LangPython,
	"golang": LangGo,
	"yml":    LangYAML,
	"rs":     LangRust,
}

// FromInfo returns the language named by a fenced code block info string,
// or "" when the info string is empty.
func FromInfo(info string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(info), " ")
	word = strings.ToLower(word)
	if alias, ok := infoAliases[word]; ok {
		return alias
	}
	return word
}

func isJava(s sample) bool {
	if bytes.HasPrefix(s.trimmed, []byte("package ")) {
		firstLine, _, _ := bytes.Cut(s.trimmed, []byte("\n"))
		return bytes.HasSuffix(bytes.TrimSpace(firstLine), []byte(";"))
	}
	return strings.Contains(s.text, "import java.") ||
		strings.Contains(s.text, "System.out.") ||
		strings.Contains(s.text, "public class ") ||
		strings.Contains(s.text, "public static void ") ||
		(strings.Contains(s.text, "@Override") && strings.Contains(s.text, ";"))
}

func isGo(s sample) bool {
	return bytes.HasPrefix(s.trimmed, []byte("package ")) ||
		strings.Contains(s.text, "func (") ||
		strings.Contains(s.text, " := ")
}

func isPython(s sample) bool {
	if strings.Contains(s.text, "def ") && strings.Contains(s.text, "):") {
		return true
	}
	if strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import (") &&
		(strings.Contains(s.text, "from ") || bytes.HasPrefix(s.trimmed, []byte("import "))) {
		return true
	}
	return strings.Contains(s.text, "__name__") || strings.Contains(s.text, "__main__")
}

func isHTML(s sample) bool {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>", "<p>", "<ul>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func isJSON(s sample) bool {
	return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
		bytes.Contains(s.trimmed, []byte(`"`)) &&
		!bytes.Contains(s.trimmed, []byte(";"))
}

func isSQL(s sample) bool {
	upper := strings.ToUpper(string(s.trimmed))
	for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, keyword) {
			return true
		}
	}
	return false
}

func isRust(s sample) bool {
	return strings.Contains(s.text, "fn main()") ||
		strings.Contains(s.text, "println!") ||
		strings.Contains(s.text, "let mut ")
}

func isJavaScript(s sample) bool {
	return strings.Contains(s.text, "=>") ||
		strings.Contains(s.text, "const ") ||
		strings.Contains(s.text, "let ") ||
		strings.Contains(s.text, "console.log")
}

// isYAML counts key: value pairs and root list items.
func isYAML(s sample) bool {
	keys := 0
	for line := range bytes.SplitSeq(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({;") &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return LangBash
	case "C#":
		return "csharp"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}
