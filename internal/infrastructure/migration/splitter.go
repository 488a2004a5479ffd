package migration

import "strings"

// SplitStatements decomposes a migration unit's raw text into executable
// statements. Comments are stripped before splitting so that a semicolon
// inside a comment cannot cause a mis-split.
func SplitStatements(raw string) []string {
	cleaned := stripComments(raw)

	parts := strings.Split(cleaned, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// stripComments removes -- line comments and /* */ block comments. String
// literals are respected so a quoted "--" or "/*" survives.
func stripComments(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	const (
		stateCode = iota
		stateLineComment
		stateBlockComment
		stateString
	)

	state := stateCode
	var quote byte

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		switch state {
		case stateCode:
			if c == '-' && i+1 < len(raw) && raw[i+1] == '-' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && i+1 < len(raw) && raw[i+1] == '*' {
				state = stateBlockComment
				i++
				continue
			}
			if c == '\'' || c == '"' {
				state = stateString
				quote = c
			}
			b.WriteByte(c)

		case stateLineComment:
			if c == '\n' {
				state = stateCode
				b.WriteByte(c)
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(raw) && raw[i+1] == '/' {
				state = stateCode
				i++
			}

		case stateString:
			b.WriteByte(c)
			if c == quote {
				state = stateCode
			}
		}
	}

	return b.String()
}
