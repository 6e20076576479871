// Package countries provides the static country catalog used by the phone
// field: region id, display name and dialing prefix for every selectable
// country, plus lookup and allow-list filtering over it.
//
// The catalog is decoded once from an embedded YAML file and never mutated,
// so it is safe to share across goroutines without synchronization.
package countries

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"phonefield/platform/apperr"
)

// DefaultCode is the catalog fallback used when neither an explicit default
// nor the host locale yields a catalog entry.
const DefaultCode = "us"

//go:embed countries.yaml
var catalogYAML []byte

// Country is an immutable catalog record.
type Country struct {
	// Code is the lowercase region id, e.g. "ke".
	Code string `yaml:"code" json:"code"`
	// Name is the English display name. Hosts localize by Code.
	Name string `yaml:"name" json:"name"`
	// PhoneNoCode is the dialing prefix including "+", e.g. "+254".
	PhoneNoCode string `yaml:"phone" json:"phoneNoCode"`
}

// DialDigits returns the dialing prefix without its leading "+".
func (c Country) DialDigits() string {
	return strings.TrimPrefix(c.PhoneNoCode, "+")
}

type catalogFile struct {
	Countries []Country `yaml:"countries"`
}

var (
	loadOnce sync.Once
	catalog  []Country
	byCode   map[string]int
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		catalog, byCode, loadErr = decode(catalogYAML)
	})
	if loadErr != nil {
		panic(loadErr)
	}
}

// decode parses and checks a catalog document: codes must be unique and
// dialing prefixes must be "+" followed by digits.
func decode(data []byte) ([]Country, map[string]int, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("countries: decode catalog: %w", err)
	}

	index := make(map[string]int, len(file.Countries))
	for i, c := range file.Countries {
		if c.Code == "" {
			return nil, nil, fmt.Errorf("countries: entry %d has no code", i)
		}
		if _, dup := index[c.Code]; dup {
			return nil, nil, fmt.Errorf("countries: duplicate code %q", c.Code)
		}
		if !isDialPrefix(c.PhoneNoCode) {
			return nil, nil, fmt.Errorf("countries: %q has invalid dialing prefix %q", c.Code, c.PhoneNoCode)
		}
		index[c.Code] = i
	}
	return file.Countries, index, nil
}

func isDialPrefix(s string) bool {
	if len(s) < 2 || s[0] != '+' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// All returns the full catalog in canonical order. The returned slice is a
// copy; callers may reorder it freely.
func All() []Country {
	load()
	out := make([]Country, len(catalog))
	copy(out, catalog)
	return out
}

// Filter returns the catalog entries selected by allowList, in catalog order.
// An empty allow-list selects everything.
//
// An entry is selected when an allow-list value equals its Code after both
// sides are trimmed and lower-cased, or equals its PhoneNoCode or Name
// exactly. Name and PhoneNoCode matching is case-sensitive.
func Filter(allowList []string) []Country {
	if len(allowList) == 0 {
		return All()
	}
	load()

	codes := make(map[string]struct{}, len(allowList))
	exact := make(map[string]struct{}, len(allowList))
	for _, v := range allowList {
		codes[NormalizeCode(v)] = struct{}{}
		exact[v] = struct{}{}
	}

	out := make([]Country, 0, len(allowList))
	for _, c := range catalog {
		if _, ok := codes[NormalizeCode(c.Code)]; ok {
			out = append(out, c)
			continue
		}
		if _, ok := exact[c.PhoneNoCode]; ok {
			out = append(out, c)
			continue
		}
		if _, ok := exact[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Lookup returns the entry whose Code equals code exactly. Case is not
// normalized; use NormalizeCode on user input first.
func Lookup(code string) (Country, error) {
	load()
	if i, ok := byCode[code]; ok {
		return catalog[i], nil
	}
	return Country{}, apperr.NotFound("country not found").
		WithOp("countries.Lookup").
		WithDetails(map[string]string{"code": code})
}

// Default returns the catalog fallback country.
func Default() Country {
	c, err := Lookup(DefaultCode)
	if err != nil {
		panic("countries: default country missing from catalog")
	}
	return c
}

// NormalizeCode trims and lower-cases a region id.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsKnownCode reports whether the normalized code has a catalog entry.
func IsKnownCode(code string) bool {
	load()
	_, ok := byCode[NormalizeCode(code)]
	return ok
}

// Flag returns the regional-indicator emoji for a two-letter code, or "" when
// the code is not two ASCII letters. Hosts without flag images use it as the
// display resource.
func Flag(code string) string {
	code = NormalizeCode(code)
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 2; i++ {
		ch := code[i]
		if ch < 'a' || ch > 'z' {
			return ""
		}
		b.WriteRune(rune(0x1F1E6 + int(ch-'a')))
	}
	return b.String()
}
