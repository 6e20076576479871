// Package domain holds the phone field state: the raw digits typed by the
// user, the selected country, and every representation derived from them.
//
// State is a plain single-owner value. It owns no observers; callers that
// need change notification wrap it in a Field.
package domain

import (
	"strings"

	"phonefield/internal/countries"
	"phonefield/platform/apperr"
	"phonefield/platform/phone"
)

// LocaleSource supplies the host locale used to pick a default country when
// none is given explicitly.
type LocaleSource interface {
	Locale() string
}

// LocaleFunc adapts a function to LocaleSource.
type LocaleFunc func() string

// Locale calls f.
func (f LocaleFunc) Locale() string { return f() }

// Options are the constructor inputs of a State.
type Options struct {
	// DefaultCountryCode is the initially selected region id. Empty means
	// resolve it from Locale, then from the catalog default.
	DefaultCountryCode string
	// AllowedCountries restricts the selectable subset. See countries.Filter.
	AllowedCountries []string
	ShowCode         bool
	ShowFlag         bool
	Locale           LocaleSource
}

// State is the phone field core.
type State struct {
	defaultCode string
	allowed     []string
	showCode    bool
	showFlag    bool

	subset    []countries.Country
	subsetIdx map[string]int

	rawDigits string
	selected  string
}

// New creates a State. It fails with a not found error when the allow-list
// selects no catalog entry. A default outside the active subset falls back
// to the first country of the subset.
func New(opts Options) (*State, error) {
	subset := countries.Filter(opts.AllowedCountries)
	if len(subset) == 0 {
		return nil, apperr.NotFound("no country matches the allow-list").
			WithOp("phonefield.New").
			WithDetails(map[string]interface{}{"allowed": opts.AllowedCountries})
	}

	idx := make(map[string]int, len(subset))
	for i, c := range subset {
		idx[c.Code] = i
	}

	def := resolveDefault(opts)
	selected := def
	if _, ok := idx[selected]; !ok {
		selected = subset[0].Code
	}

	return &State{
		defaultCode: def,
		allowed:     append([]string(nil), opts.AllowedCountries...),
		showCode:    opts.ShowCode,
		showFlag:    opts.ShowFlag,
		subset:      subset,
		subsetIdx:   idx,
		selected:    selected,
	}, nil
}

func resolveDefault(opts Options) string {
	if code := countries.NormalizeCode(opts.DefaultCountryCode); code != "" {
		return code
	}
	if opts.Locale != nil {
		if c, ok := countries.RegionForLocale(opts.Locale.Locale()); ok {
			return c.Code
		}
	}
	return countries.DefaultCode
}

// SetRawDigits replaces the user-entered text. Formatting characters are
// kept; derivations ignore them.
func (s *State) SetRawDigits(text string) {
	s.rawDigits = text
}

// SetCountry selects a country from the active subset. The code must match
// exactly; on failure the current selection is kept.
func (s *State) SetCountry(code string) error {
	if _, ok := s.subsetIdx[code]; !ok {
		return apperr.NotFound("country not in the active subset").
			WithOp("phonefield.SetCountry").
			WithDetails(map[string]interface{}{"code": code, "allowed": s.allowed})
	}
	s.selected = code
	return nil
}

// RawDigits returns the text as entered.
func (s *State) RawDigits() string { return s.rawDigits }

// SelectedCountryCode returns the selected region id.
func (s *State) SelectedCountryCode() string { return s.selected }

// SelectedCountry returns the selected catalog entry.
func (s *State) SelectedCountry() countries.Country {
	return s.subset[s.subsetIdx[s.selected]]
}

// Countries returns the active subset in catalog order.
func (s *State) Countries() []countries.Country {
	return append([]countries.Country(nil), s.subset...)
}

// DefaultCountryCode returns the resolved default region id.
func (s *State) DefaultCountryCode() string { return s.defaultCode }

// AllowedCountries returns the allow-list the state was created with.
func (s *State) AllowedCountries() []string { return append([]string(nil), s.allowed...) }

// ShowCode reports whether the host should render the dialing code.
func (s *State) ShowCode() bool { return s.showCode }

// ShowFlag reports whether the host should render the flag.
func (s *State) ShowFlag() bool { return s.showFlag }

// NormalizedLocalNumber returns the digits of the raw text with a leading
// trunk "0" guaranteed. Empty input yields "0".
func (s *State) NormalizedLocalNumber() string {
	digits := onlyDigits(s.rawDigits)
	if !strings.HasPrefix(digits, "0") {
		return "0" + digits
	}
	return digits
}

// PhoneCodeWithPrefix returns the dialing code with "+", e.g. "+254".
func (s *State) PhoneCodeWithPrefix() string {
	return s.SelectedCountry().PhoneNoCode
}

// PhoneCodeWithoutPrefix returns the dialing code without "+", e.g. "254".
func (s *State) PhoneCodeWithoutPrefix() string {
	return strings.TrimPrefix(s.PhoneCodeWithPrefix(), "+")
}

// LocalNumberWithoutPrefix drops exactly one leading "0" from the normalized
// local number.
func (s *State) LocalNumberWithoutPrefix() string {
	return strings.TrimPrefix(s.NormalizedLocalNumber(), "0")
}

// FullNumberWithoutCountryPrefix returns e.g. "254712345678".
func (s *State) FullNumberWithoutCountryPrefix() string {
	return s.PhoneCodeWithoutPrefix() + s.LocalNumberWithoutPrefix()
}

// FullNumber returns e.g. "+254712345678".
func (s *State) FullNumber() string {
	return s.PhoneCodeWithPrefix() + s.LocalNumberWithoutPrefix()
}

// IsValid checks FullNumber against the length rule of the selected
// dialing code.
func (s *State) IsValid() bool {
	return s.IsValidNumber(s.FullNumber())
}

// IsValidNumber structurally validates candidate for the selected country.
// A candidate starting with "+" must carry the selected dialing code; any
// other candidate is read as a local number with an optional trunk "0".
// Non-digit characters are ignored.
func (s *State) IsValidNumber(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	dial := s.PhoneCodeWithoutPrefix()
	digits := onlyDigits(candidate)

	var national string
	if strings.HasPrefix(candidate, "+") {
		if !strings.HasPrefix(digits, dial) {
			return false
		}
		national = digits[len(dial):]
	} else {
		national = strings.TrimPrefix(digits, "0")
	}

	if national == "" {
		return false
	}
	return RuleFor(dial).Allows(len(national))
}

// IsValidStrict validates FullNumber with libphonenumber metadata for the
// selected region.
func (s *State) IsValidStrict() bool {
	return phone.IsValid(s.FullNumber(), s.selected)
}

// Mask returns the display mask of the selected country.
func (s *State) Mask() Mask {
	return MaskFor(s.selected, s.PhoneCodeWithoutPrefix())
}

// FormattedLocalNumber masks the raw text for live editing, keeping the
// cursor mapping.
func (s *State) FormattedLocalNumber() Transformed {
	return s.Mask().Apply(s.rawDigits)
}

// FormattedFullNumber returns the dialing code followed by the grouped
// national number, e.g. "+254 712 345 678".
func (s *State) FormattedFullNumber() string {
	local := s.LocalNumberWithoutPrefix()
	if local == "" {
		return s.PhoneCodeWithPrefix()
	}
	return s.PhoneCodeWithPrefix() + " " + s.Mask().Apply(local).Text
}

// InternationalNumber formats FullNumber with libphonenumber's international
// format, falling back to FormattedFullNumber when the number does not parse.
func (s *State) InternationalNumber() string {
	if out, ok := phone.FormatInternational(s.FullNumber(), s.selected); ok {
		return out
	}
	return s.FormattedFullNumber()
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
