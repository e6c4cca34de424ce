package delimited

import (
	"strings"
	"unicode/utf8"
)

// Tokenize splits one raw line (terminator already stripped) into column
// values according to d.
//
// It never fails. An empty line yields a single empty column. In quote-aware
// mode an unterminated quoted section simply runs to end of line, and the
// accumulated text is emitted as the last column.
func Tokenize(line string, d Dialect) []string {
	if !d.SupportsQuoting {
		return strings.Split(line, string(d.Delimiter))
	}
	return splitQuoted(line, d.Delimiter, d.quote())
}

// splitQuoted is the quote-aware state machine.
//
// Unquoted: quote enters quoted mode, delimiter ends the column, everything
// else is appended.
//
// Quoted: a quote followed by end of line or by the delimiter closes the
// section (the delimiter is then handled by the unquoted state); a doubled
// quote yields one literal quote; any other rune, including the delimiter and
// a lone quote followed by something else, is taken literally. Bytes are
// copied as-is, so input that is not valid UTF-8 passes through unchanged.
func splitQuoted(line string, delim, quote rune) []string {
	out := make([]string, 0, strings.Count(line, string(delim))+1)
	var sb strings.Builder
	sb.Grow(len(line))

	inQuotes := false
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		i += size

		if !inQuotes {
			switch r {
			case quote:
				inQuotes = true
			case delim:
				out = append(out, sb.String())
				sb.Reset()
			default:
				sb.WriteString(line[i-size : i])
			}
			continue
		}

		if r != quote {
			sb.WriteString(line[i-size : i])
			continue
		}
		if i >= len(line) {
			inQuotes = false
			continue
		}
		next, nsize := utf8.DecodeRuneInString(line[i:])
		switch next {
		case delim:
			inQuotes = false
		case quote:
			sb.WriteRune(quote)
			i += nsize
		default:
			sb.WriteString(line[i-size : i])
		}
	}
	return append(out, sb.String())
}
