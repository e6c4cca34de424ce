package delimited

import (
	"fmt"
	"strings"
)

// LegacyReplacements is the sentinel set older exports used to smuggle
// apostrophes and commas through comma-delimited files.
var LegacyReplacements = []string{
	":apos", "'",
	":comma", ",",
}

// Scrubber applies literal text substitutions to a raw line before it is
// tokenized. The zero value and a nil *Scrubber are no-ops.
type Scrubber struct {
	r *strings.Replacer
}

// NewScrubber builds a Scrubber from old/new pairs, in the same form
// strings.NewReplacer takes. An empty list yields a no-op Scrubber.
func NewScrubber(pairs ...string) (*Scrubber, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("delimited: scrub replacements must come in old/new pairs, got %d values", len(pairs))
	}
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i] == "" {
			return nil, fmt.Errorf("delimited: scrub replacement %d has an empty search string", i/2)
		}
	}
	if len(pairs) == 0 {
		return &Scrubber{}, nil
	}
	return &Scrubber{r: strings.NewReplacer(pairs...)}, nil
}

// Enabled reports whether Apply can change its input.
func (s *Scrubber) Enabled() bool { return s != nil && s.r != nil }

// Apply returns line with all configured substitutions applied.
func (s *Scrubber) Apply(line string) string {
	if !s.Enabled() {
		return line
	}
	return s.r.Replace(line)
}
