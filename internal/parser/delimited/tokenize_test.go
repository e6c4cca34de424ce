package delimited

import (
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

// TestTokenize_Quoted exercises the quote-aware state machine used for
// comma-delimited input.
func TestTokenize_Quoted(t *testing.T) {
	t.Parallel()

	comma := NewDialect(',')

	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "plain", line: "a,b,c", want: []string{"a", "b", "c"}},
		{name: "empty line", line: "", want: []string{""}},
		{name: "trailing delimiter", line: "a,", want: []string{"a", ""}},
		{name: "leading delimiter", line: ",a", want: []string{"", "a"}},
		{name: "only delimiters", line: ",,", want: []string{"", "", ""}},
		{name: "delimiter inside quotes", line: `a,"b,c",d`, want: []string{"a", "b,c", "d"}},
		{name: "doubled quote", line: `"he said ""hi""",x`, want: []string{`he said "hi"`, "x"}},
		{name: "empty quoted", line: `""`, want: []string{""}},
		{name: "empty quoted then value", line: `"",b`, want: []string{"", "b"}},
		{name: "quote opens mid column", line: `a"b,c`, want: []string{"ab,c"}},
		{name: "unterminated quote", line: `"abc`, want: []string{"abc"}},
		{name: "unterminated quote with delimiter", line: `x,"a,b`, want: []string{"x", "a,b"}},
		{name: "lone quote kept literally", line: `"a"b",c`, want: []string{`a"b`, "c"}},
		{name: "closing quote at end", line: `a,"b"`, want: []string{"a", "b"}},
		{name: "multibyte content", line: `"Žluť,ký",kůň`, want: []string{"Žluť,ký", "kůň"}},
		{name: "invalid utf-8 kept", line: "caf\xe9,x", want: []string{"caf\xe9", "x"}},
		{name: "invalid utf-8 inside quotes", line: "\"a\xe9,b\",\xff", want: []string{"a\xe9,b", "\xff"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.line, comma)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestTokenize_Naive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delim rune
		line  string
		want  []string
	}{
		{name: "pipe", delim: '|', line: "a|b|c", want: []string{"a", "b", "c"}},
		{name: "quotes are literal", delim: '|', line: `a|"b|c"`, want: []string{"a", `"b`, `c"`}},
		{name: "tab", delim: '\t', line: "x\ty", want: []string{"x", "y"}},
		{name: "empty", delim: ';', line: "", want: []string{""}},
		{name: "multibyte delimiter", delim: '¦', line: "a¦b¦", want: []string{"a", "b", ""}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.line, NewDialect(tt.delim))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tokenize(%q, %q) = %q, want %q", tt.line, tt.delim, got, tt.want)
			}
		})
	}
}

func TestTokenize_QuotingOptIn(t *testing.T) {
	t.Parallel()

	d := NewDialect('|').WithQuoting(true)
	got := Tokenize(`a|"b|c"`, d)
	want := []string{"a", "b|c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize with quoting = %q, want %q", got, want)
	}

	// Opting out on comma falls back to a plain split.
	got = Tokenize(`"a,b"`, NewDialect(',').WithQuoting(false))
	want = []string{`"a`, `b"`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize without quoting = %q, want %q", got, want)
	}
}

// encodeCSV joins values with commas, quoting any value that holds a comma
// or a double quote.
func encodeCSV(values []string) string {
	out := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v, `,"`) {
			v = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		out[i] = v
	}
	return strings.Join(out, ",")
}

// TestTokenize_RoundTrip checks that tokenizing an encoded row returns the
// original values for comma-delimited input.
func TestTokenize_RoundTrip(t *testing.T) {
	t.Parallel()

	fixed := [][]string{
		{"a", "b", "c"},
		{""},
		{"", ""},
		{`"`},
		{`",`, "x"},
		{`"x`, `y"`},
		{"O'Brien", "5"},
		{"a,b", `say "hi"`, ""},
		{"Žluť,ký", "kůň"},
	}

	alphabet := []rune(`ab,"' ;Ž`)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		row := make([]string, 1+rng.IntN(5))
		for j := range row {
			var sb strings.Builder
			for k := rng.IntN(6); k > 0; k-- {
				sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
			}
			row[j] = sb.String()
		}
		fixed = append(fixed, row)
	}

	comma := NewDialect(',')
	for _, want := range fixed {
		line := encodeCSV(want)
		if got := Tokenize(line, comma); !reflect.DeepEqual(got, want) {
			t.Fatalf("Tokenize(%q) = %q, want %q", line, got, want)
		}
	}
}

// TestTokenize_ColumnCount checks that an unquoted comma line yields
// delimiter count + 1 columns.
func TestTokenize_ColumnCount(t *testing.T) {
	t.Parallel()

	lines := []string{"", "a", "a,b", ",,,", "x,,y,", "1,2,3,4,5,6,7,8,9"}
	for _, line := range lines {
		want := 1
		for _, r := range line {
			if r == ',' {
				want++
			}
		}
		if got := len(Tokenize(line, NewDialect(','))); got != want {
			t.Fatalf("len(Tokenize(%q)) = %d, want %d", line, got, want)
		}
	}
}

func TestDialect_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		d       Dialect
		wantErr bool
	}{
		{name: "comma", d: NewDialect(','), wantErr: false},
		{name: "zero delimiter", d: Dialect{}, wantErr: true},
		{name: "newline", d: NewDialect('\n'), wantErr: true},
		{name: "quote as delimiter with quoting", d: NewDialect('"').WithQuoting(true), wantErr: true},
		{name: "quote as delimiter without quoting", d: NewDialect('"'), wantErr: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.d.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{in: "", want: ','},
		{in: ",", want: ','},
		{in: "tab", want: '\t'},
		{in: `\t`, want: '\t'},
		{in: "pipe", want: '|'},
		{in: "semicolon", want: ';'},
		{in: "¦", want: '¦'},
		{in: "ab", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDelimiter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDelimiter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseDelimiter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
