package delimited

import "strings"

// QuoteLiteral renders v as a single-quoted SQL string literal, doubling any
// embedded single quote.
func QuoteLiteral(v string) string {
	var sb strings.Builder
	sb.Grow(len(v) + 2)
	sb.WriteByte('\'')
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\'' {
			sb.WriteByte('\'')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('\'')
	return sb.String()
}

// QuoteAll quotes every value with QuoteLiteral.
func QuoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = QuoteLiteral(v)
	}
	return out
}

// JoinLiterals joins already-quoted literals with "," or, when multiline is
// set, with ",\n" for a human-readable rendering.
func JoinLiterals(literals []string, multiline bool) string {
	sep := ","
	if multiline {
		sep = ",\n"
	}
	return strings.Join(literals, sep)
}

// Normalize tokenizes line with d and returns the comma-joined list of
// escaped literals:
//
//	a,b'c  =>  'a','b''c'
//
// Normalize does not check arity; see CheckArity.
func Normalize(line string, d Dialect) string {
	return JoinLiterals(QuoteAll(Tokenize(line, d)), false)
}
