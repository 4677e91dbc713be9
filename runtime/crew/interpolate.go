package crew

import (
	"fmt"
	"sort"
	"strings"
)

// MissingInputError is returned when a template references an input that was
// not provided at kickoff.
type MissingInputError struct {
	Names []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("crew: missing kickoff inputs: %s", strings.Join(e.Names, ", "))
}

// interpolate replaces {name} placeholders in tmpl with inputs[name]. Only
// identifiers ([A-Za-z_][A-Za-z0-9_]*) are placeholders; any other brace is
// copied as is. "{{" produces a literal "{" and the "}}" closing it a literal
// "}"; an unpaired "}}" is kept so nested JSON survives. Referenced names that
// have no input are collected into missing.
func interpolate(tmpl string, inputs map[string]string, missing map[string]struct{}) string {
	if !strings.ContainsAny(tmpl, "{}") {
		return tmpl
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	escaped := 0
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			escaped++
			i++
		case c == '}' && escaped > 0 && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			escaped--
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 || !isIdent(tmpl[i+1:i+1+end]) {
				b.WriteByte(c)
				continue
			}
			name := tmpl[i+1 : i+1+end]
			if v, ok := inputs[name]; ok {
				b.WriteString(v)
			} else {
				missing[name] = struct{}{}
			}
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func missingInputError(missing map[string]struct{}) error {
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for n := range missing {
		names = append(names, n)
	}
	sort.Strings(names)
	return &MissingInputError{Names: names}
}
