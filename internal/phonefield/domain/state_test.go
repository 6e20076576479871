package domain

import (
	"strings"
	"testing"

	"phonefield/internal/countries"
	"phonefield/platform/apperr"
)

func newKenya(t *testing.T, raw string) *State {
	t.Helper()
	st, err := New(Options{DefaultCountryCode: "ke", ShowCode: true, ShowFlag: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st.SetRawDigits(raw)
	return st
}

func TestDerivedNumbersForKenya(t *testing.T) {
	st := newKenya(t, "0712345678")

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"NormalizedLocalNumber", st.NormalizedLocalNumber(), "0712345678"},
		{"PhoneCodeWithPrefix", st.PhoneCodeWithPrefix(), "+254"},
		{"PhoneCodeWithoutPrefix", st.PhoneCodeWithoutPrefix(), "254"},
		{"LocalNumberWithoutPrefix", st.LocalNumberWithoutPrefix(), "712345678"},
		{"FullNumberWithoutCountryPrefix", st.FullNumberWithoutCountryPrefix(), "254712345678"},
		{"FullNumber", st.FullNumber(), "+254712345678"},
		{"FormattedFullNumber", st.FormattedFullNumber(), "+254 712 345 678"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if !st.IsValid() {
		t.Fatalf("expected %q to be valid", st.FullNumber())
	}
}

func TestNormalizedLocalNumberAlwaysStartsWithZero(t *testing.T) {
	inputs := []string{
		"712345678",
		"0712345678",
		"(071) 234-5678",
		"+254 712 345 678",
		"abc7x1y2",
		"  0 0 1",
		"٣٤٥", // non-ASCII digits are noise
		"",
		"----",
	}

	for _, in := range inputs {
		st := newKenya(t, in)
		got := st.NormalizedLocalNumber()
		if !strings.HasPrefix(got, "0") {
			t.Errorf("NormalizedLocalNumber(%q) = %q, missing leading 0", in, got)
		}
		for _, r := range got {
			if r < '0' || r > '9' {
				t.Errorf("NormalizedLocalNumber(%q) = %q contains non-digit %q", in, got, r)
			}
		}
	}
}

func TestPermissiveDegradation(t *testing.T) {
	st := newKenya(t, "")
	if st.NormalizedLocalNumber() != "0" {
		t.Fatalf("expected empty input to normalize to 0, got %q", st.NormalizedLocalNumber())
	}
	if st.LocalNumberWithoutPrefix() != "" {
		t.Fatalf("expected empty local number, got %q", st.LocalNumberWithoutPrefix())
	}
	if st.FullNumber() != "+254" {
		t.Fatalf("expected bare dialing code, got %q", st.FullNumber())
	}
	if st.FormattedFullNumber() != "+254" {
		t.Fatalf("expected bare dialing code, got %q", st.FormattedFullNumber())
	}
	if st.IsValid() {
		t.Fatalf("empty number must not be valid")
	}
}

func TestLocalNumberWithoutPrefixDropsOnlyOneZero(t *testing.T) {
	st := newKenya(t, "00712")
	if got := st.LocalNumberWithoutPrefix(); got != "0712" {
		t.Fatalf("expected 0712, got %q", got)
	}
}

func TestIsValidNumber(t *testing.T) {
	st := newKenya(t, "")
	cases := []struct {
		candidate string
		want      bool
	}{
		{"+254712345678", true},
		{"+254 712 345 678", true},
		{"0712345678", true},
		{"712345678", true},
		{"+2547123456", false},
		{"+255712345678", false},
		{"07123", false},
		{"+254", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := st.IsValidNumber(tc.candidate); got != tc.want {
			t.Errorf("IsValidNumber(%q) = %v, want %v", tc.candidate, got, tc.want)
		}
	}
}

func TestIsValidRejectsShortLocalNumber(t *testing.T) {
	st := newKenya(t, "071234567")
	if st.IsValid() {
		t.Fatalf("expected 8 national digits to be invalid for ke")
	}
	st.SetRawDigits("0712345678")
	if !st.IsValid() {
		t.Fatalf("expected 9 national digits to be valid for ke")
	}
}

func TestIsValidUsesRuleOfSelectedCountry(t *testing.T) {
	st, err := New(Options{DefaultCountryCode: "us"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st.SetRawDigits("2025550123")
	if !st.IsValid() {
		t.Fatalf("expected 10 digit NANP number to be valid")
	}
	if err := st.SetCountry("ke"); err != nil {
		t.Fatalf("SetCountry: %v", err)
	}
	if st.IsValid() {
		t.Fatalf("expected 10 national digits to be invalid for ke")
	}
}

func TestIsValidStrictAndInternational(t *testing.T) {
	st := newKenya(t, "0712345678")
	if !st.IsValidStrict() {
		t.Fatalf("expected libphonenumber to accept %q", st.FullNumber())
	}
	if got := st.InternationalNumber(); !strings.HasPrefix(got, "+254 ") {
		t.Fatalf("unexpected international format %q", got)
	}

	st.SetRawDigits("")
	if got := st.InternationalNumber(); !strings.HasPrefix(got, "+254") {
		t.Fatalf("unexpected fallback format %q", got)
	}
}

func TestSetCountryUnknownKeepsSelection(t *testing.T) {
	st := newKenya(t, "0712345678")
	err := st.SetCountry("zz")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
	if st.SelectedCountryCode() != "ke" {
		t.Fatalf("selection changed to %q", st.SelectedCountryCode())
	}
}

func TestSetCountryOutsideAllowList(t *testing.T) {
	st, err := New(Options{DefaultCountryCode: "ke", AllowedCountries: []string{"ke", "ug"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := st.SetCountry("tz"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected tz to be rejected, got %v", err)
	}
	if err := st.SetCountry("KE"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected exact matching, got %v", err)
	}
	if err := st.SetCountry("ug"); err != nil {
		t.Fatalf("SetCountry(ug): %v", err)
	}
	if st.PhoneCodeWithPrefix() != "+256" {
		t.Fatalf("expected +256, got %q", st.PhoneCodeWithPrefix())
	}
	if len(st.Countries()) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(st.Countries()))
	}
}

func TestNewDefaultResolution(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want string
	}{
		{"explicit", Options{DefaultCountryCode: "tz"}, "tz"},
		{"explicit normalized", Options{DefaultCountryCode: " TZ "}, "tz"},
		{"locale", Options{Locale: LocaleFunc(func() string { return "en_UG.UTF-8" })}, "ug"},
		{"locale miss falls back to catalog", Options{Locale: LocaleFunc(func() string { return "C" })}, countries.DefaultCode},
		{"no locale", Options{}, countries.DefaultCode},
		{"default outside subset", Options{DefaultCountryCode: "tz", AllowedCountries: []string{"ug", "ke"}}, "ke"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := New(tc.opts)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if st.SelectedCountryCode() != tc.want {
				t.Fatalf("selected %q, want %q", st.SelectedCountryCode(), tc.want)
			}
		})
	}
}

func TestNewEmptySubset(t *testing.T) {
	_, err := New(Options{AllowedCountries: []string{"Atlantis"}})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestAllowedCountriesIsCopied(t *testing.T) {
	allowed := []string{"ke", "ug"}
	st, err := New(Options{AllowedCountries: allowed})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	allowed[0] = "tz"
	if st.AllowedCountries()[0] != "ke" {
		t.Fatalf("state must not alias caller slice")
	}
}
