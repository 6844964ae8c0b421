package parser

import "strings"

// isBuiltInDateFormat reports whether a built-in number format id is a date
// or time format, including the East Asian locale ids.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	default:
		return false
	}
}

// isDateFormatCode reports whether a custom number format code formats dates
// or times. Only the first section is inspected. Quoted literals, escaped
// characters and bracketed modifiers are ignored, except elapsed-time
// brackets such as [h] or [mm].
func isDateFormatCode(code string) bool {
	section, _, _ := strings.Cut(code, ";")
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(section); i++ {
		c := section[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '\\', c == '_', c == '*':
			i++
		case c == '[':
			end := strings.IndexByte(section[i:], ']')
			if end < 0 {
				i = len(section)
				continue
			}
			if isElapsedToken(strings.ToLower(section[i+1 : i+end])) {
				b.WriteByte('h')
			}
			i += end
		default:
			b.WriteByte(c)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

func isElapsedToken(token string) bool {
	if token == "" {
		return false
	}
	return strings.Trim(token, "hms") == ""
}
