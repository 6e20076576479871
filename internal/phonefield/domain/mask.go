package domain

import "strings"

// placeholder marks a digit slot in a mask pattern. Every other pattern rune
// is a literal inserted between digits.
const placeholder = 'X'

// Mask groups a digit stream for display. Patterns describe the national
// significant number; a leading trunk "0" is joined to the first group.
type Mask struct {
	pattern string
}

// maskPatterns is keyed by region id.
var maskPatterns = map[string]string{
	"ke": "XXX XXX XXX",
	"ug": "XXX XXX XXX",
	"tz": "XXX XXX XXX",
	"rw": "XXX XXX XXX",
	"us": "XXX XXX XXXX",
	"ca": "XXX XXX XXXX",
	"gb": "XXXX XXXXXX",
	"de": "XXX XXXXXXXX",
	"fr": "X XX XX XX XX",
	"nl": "X XXXX XXXX",
	"be": "XXX XX XX XX",
	"es": "XXX XX XX XX",
	"it": "XXX XXX XXXX",
	"in": "XXXXX XXXXX",
	"ng": "XXX XXX XXXX",
	"za": "XX XXX XXXX",
	"au": "XXX XXX XXX",
	"br": "XX XXXXX XXXX",
	"ru": "XXX XXX XX XX",
}

// MaskFor returns the mask for a region. Regions without a pattern are
// grouped in threes up to the maximum length allowed for their dialing code.
func MaskFor(code, dialDigits string) Mask {
	if p, ok := maskPatterns[code]; ok {
		return Mask{pattern: p}
	}
	return Mask{pattern: groupedPattern(RuleFor(dialDigits).Max)}
}

// groupedPattern builds groups of three, folding a trailing single digit into
// the last group.
func groupedPattern(n int) string {
	var groups []string
	for n > 0 {
		size := 3
		if n < 3 || n == 4 {
			size = n
		}
		groups = append(groups, strings.Repeat(string(placeholder), size))
		n -= size
	}
	return strings.Join(groups, " ")
}

// Pattern returns the raw pattern.
func (m Mask) Pattern() string {
	return m.pattern
}

// Transformed is masked text plus the cursor mapping between the raw text
// and the masked text. Offsets count runes.
type Transformed struct {
	Text          string
	toTransformed []int
	toOriginal    []int
}

// OriginalToTransformed maps a cursor offset in the raw text to the masked
// text. Out of range offsets are clamped.
func (t Transformed) OriginalToTransformed(offset int) int {
	return t.toTransformed[clamp(offset, len(t.toTransformed)-1)]
}

// TransformedToOriginal maps a cursor offset in the masked text back to the
// raw text. Out of range offsets are clamped.
func (t Transformed) TransformedToOriginal(offset int) int {
	return t.toOriginal[clamp(offset, len(t.toOriginal)-1)]
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Apply masks text. Non-digit runes are dropped from the output; separators
// are only emitted in front of a digit, so a partially typed number never
// ends with a dangling separator. Digits beyond the pattern are appended
// ungrouped.
func (m Mask) Apply(text string) Transformed {
	raw := []rune(text)
	pattern := []rune(m.pattern)
	if first := firstDigit(raw); first == '0' {
		pattern = append([]rune{placeholder}, pattern...)
	}

	var out []rune
	toTransformed := make([]int, len(raw)+1)
	toOriginal := make([]int, 0, len(raw)+len(pattern)+1)
	pos := 0

	for i, r := range raw {
		if !isDigit(r) {
			toTransformed[i] = len(out)
			continue
		}
		for pos < len(pattern) && pattern[pos] != placeholder {
			out = append(out, pattern[pos])
			toOriginal = append(toOriginal, i)
			pos++
		}
		toTransformed[i] = len(out)
		out = append(out, r)
		toOriginal = append(toOriginal, i)
		if pos < len(pattern) {
			pos++
		}
	}
	toTransformed[len(raw)] = len(out)
	toOriginal = append(toOriginal, len(raw))

	return Transformed{
		Text:          string(out),
		toTransformed: toTransformed,
		toOriginal:    toOriginal,
	}
}

func firstDigit(rs []rune) rune {
	for _, r := range rs {
		if isDigit(r) {
			return r
		}
	}
	return 0
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
