package repair

import "strings"

// extractCandidate locates the JSON candidate inside free-form model output.
// A fenced code block, when present, is preferred over the surrounding prose;
// either way the outermost balanced { ... } span is returned. The empty
// string means no balanced span exists.
func extractCandidate(raw string) string {
	if fenced, ok := extractFencedBlock(raw); ok {
		if block := extractJSONBlock(fenced); block != "" {
			return block
		}
	}
	return extractJSONBlock(raw)
}

// extractFencedBlock returns the contents of the first markdown code fence
// (```json ... ``` or ``` ... ```) that contains an opening brace.
func extractFencedBlock(s string) (string, bool) {
	for {
		start := strings.Index(s, "```")
		if start == -1 {
			return "", false
		}
		rest := s[start+3:]
		// Skip the language tag, if any.
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			rest = rest[nl+1:]
		}
		end := strings.Index(rest, "```")
		if end == -1 {
			// Unterminated fence: treat the remainder as the block.
			if strings.ContainsRune(rest, '{') {
				return rest, true
			}
			return "", false
		}
		if block := rest[:end]; strings.ContainsRune(block, '{') {
			return block, true
		}
		s = rest[end+3:]
	}
}

// extractJSONBlock finds the first balanced { ... } block in the text,
// honoring string literals and escapes.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	// Unbalanced: return the open span so the bracket-completion pass can
	// finish it. An empty result is reserved for "no brace at all".
	return s[start:]
}
