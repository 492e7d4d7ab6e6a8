package repair

import (
	"fmt"
	"strings"
)

// A pass is one pure text transform in the repair chain. Passes are
// idempotent and are tried cumulatively, in order, with a parse attempt
// after each one.
type pass struct {
	name  string
	apply func(string) string
}

func repairPasses() []pass {
	return []pass{
		{name: "strip_trailing_commas", apply: stripTrailingCommas},
		{name: "normalize_quotes", apply: normalizeQuotes},
		{name: "escape_control_chars", apply: escapeControlChars},
		{name: "complete_brackets", apply: completeBrackets},
	}
}

// stripTrailingCommas removes commas that directly precede a closing bracket
// or brace, outside string literals.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}
		if inString {
			b.WriteByte(c)
			continue
		}

		if c == ',' {
			if next := nextNonSpace(s, i+1); next == ']' || next == '}' {
				continue
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

// normalizeQuotes rewrites smart/curly quotes to their plain ASCII forms.
// Models pick these up from typographic training text.
func normalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double
	"”", `"`, // right double
	"„", `"`, // low double
	"‘", "'", // left single
	"’", "'", // right single
)

// escapeControlChars escapes raw control characters that appear inside
// string literals, which strict JSON forbids.
func escapeControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' && inString {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c == '"' {
			b.WriteByte(c)
			inString = !inString
			continue
		}

		if inString && c < 0x20 {
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

// completeBrackets appends the minimum closing brackets needed to balance
// the text. An unterminated string literal is closed first.
func completeBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if !inString {
		if len(stack) == 0 {
			return s
		}
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
		default:
			return s[i]
		}
	}
	return 0
}
