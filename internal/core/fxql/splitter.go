package fxql

import "strings"

// Normalize turns literal "\n" escape sequences into real newlines and trims
// the result. Submissions sent as JSON strings often carry the escaped form.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `\n`, "\n"))
}

// SplitStatements cuts s right after every closing brace, dropping the
// whitespace that follows it. Each piece is trimmed and empty pieces are
// skipped. This is only a coarse segmentation; a piece may still hold zero or
// several blocks.
func SplitStatements(s string) []string {
	var statements []string
	for len(s) > 0 {
		idx := strings.IndexByte(s, '}')
		if idx < 0 {
			if stmt := strings.TrimSpace(s); stmt != "" {
				statements = append(statements, stmt)
			}
			break
		}
		if stmt := strings.TrimSpace(s[:idx+1]); stmt != "" {
			statements = append(statements, stmt)
		}
		s = s[idx+1:]
	}
	return statements
}
