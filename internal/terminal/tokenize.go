package terminal

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned when a quoted span is never closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// ParsedInput is the tokenized form of one raw input line.
type ParsedInput struct {
	Name string
	Args []string
}

// Empty reports whether the line contained no tokens (blank input).
func (p ParsedInput) Empty() bool {
	return p.Name == ""
}

// Tokenize splits a raw line into a command name and arguments.
// Whitespace separates tokens except inside single- or double-quoted spans;
// quotes are stripped from the resulting tokens. A quoted span that is never
// closed yields ErrUnterminatedQuote.
func Tokenize(raw string) (ParsedInput, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quote   rune // 0 when outside a quoted span
	)

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return ParsedInput{}, fmt.Errorf("%w: missing closing %c", ErrUnterminatedQuote, quote)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}

	if len(tokens) == 0 {
		return ParsedInput{}, nil
	}
	return ParsedInput{Name: tokens[0], Args: tokens[1:]}, nil
}
