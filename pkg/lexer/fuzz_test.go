package lexer_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/doclex/pkg/doctoken"
	"github.com/yaklabco/doclex/pkg/lexer"
)

// FuzzTokenize checks that every body yields a total, gap-free token
// stream whose text tokens never cross a line boundary.
func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"abc {@code 123} def",
		"{@summary abc `\ndef}\nrest",
		"123 ```abc`def``` 456.",
		"```\ncode\n```",
		"~~~java\n{@x}\n",
		"123.\n\n    code\n\n456",
		"- item\n\n      code",
		"@param x the {@link X}\n@return y",
		"{@a {@b {c}}",
		"\\`not code`",
		"# Heading\n    code\n---\n\tcode",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, body []byte) {
		tokens := lexer.Tokenize(body)

		if err := doctoken.Validate(tokens, len(body)); err != nil {
			t.Fatalf("invalid token stream for %q: %v", body, err)
		}

		if got := doctoken.Concat(tokens, body); got != string(body) {
			t.Fatalf("concatenation %q differs from body %q", got, body)
		}

		for _, tok := range tokens {
			if tok.Kind != doctoken.Text {
				continue
			}
			text := tok.Text(body)
			if idx := bytes.IndexByte(text, '\n'); idx >= 0 && idx != len(text)-1 {
				t.Fatalf("text token %q spans lines", text)
			}
		}
	})
}
