package quad

import "strings"

// Render formats a quadruple stream one instruction per line, in the
// canonical "(op, arg1, arg2, result)" textual IR form.
func Render(quads []Quadruple) string {
	var sb strings.Builder
	for _, q := range quads {
		sb.WriteString(q.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
