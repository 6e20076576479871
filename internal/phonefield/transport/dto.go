package transport

import (
	"phonefield/internal/countries"
	"phonefield/internal/phonefield/domain"
)

// ListCountriesRequest filters the catalog. Allowed is a comma separated
// allow-list of codes, dialing codes or names.
type ListCountriesRequest struct {
	Allowed string `form:"allowed" validate:"max=2000"`
}

// LocaleRequest resolves a host locale tag.
type LocaleRequest struct {
	Tag string `form:"tag" validate:"required,max=64"`
}

// DetectRequest resolves the country of an international number.
type DetectRequest struct {
	Number string `form:"number" validate:"required,max=32"`
}

// CountryResponse represents a catalog entry in API responses.
type CountryResponse struct {
	Code        string `json:"code" yaml:"code"`
	Name        string `json:"name" yaml:"name"`
	PhoneNoCode string `json:"phoneNoCode" yaml:"phoneNoCode"`
	Flag        string `json:"flag" yaml:"flag"`
}

// CountryListResponse wraps a list of countries.
type CountryListResponse struct {
	Items []CountryResponse `json:"items" yaml:"items"`
	Total int               `json:"total" yaml:"total"`
}

// DetectResponse is the detected country plus the number in E.164 form.
type DetectResponse struct {
	Country CountryResponse `json:"country" yaml:"country"`
	E164    string          `json:"e164" yaml:"e164"`
}

// CreateRequest creates a phone field. Empty fields take the server defaults.
type CreateRequest struct {
	DefaultCountryCode string   `json:"defaultCountryCode,omitempty" validate:"omitempty,countrycode"`
	AllowedCountries   []string `json:"allowedCountries,omitempty" validate:"omitempty,max=300,dive,required,max=100"`
	ShowCode           *bool    `json:"showCode,omitempty"`
	ShowFlag           *bool    `json:"showFlag,omitempty"`
	Locale             string   `json:"locale,omitempty" validate:"omitempty,max=64"`
	RawDigits          string   `json:"rawDigits,omitempty" validate:"max=64"`
}

// SnapshotRequest carries a serialized phone field.
type SnapshotRequest struct {
	DefaultCountryCode  string   `json:"defaultCountryCode" validate:"omitempty,countrycode"`
	AllowedCountries    []string `json:"allowedCountries,omitempty" validate:"omitempty,max=300,dive,required,max=100"`
	ShowCode            bool     `json:"showCode"`
	ShowFlag            bool     `json:"showFlag"`
	RawDigits           string   `json:"rawDigits" validate:"max=64"`
	SelectedCountryCode string   `json:"selectedCountryCode" validate:"omitempty,max=8"`
}

// ToSnapshot converts the request into a domain snapshot.
func (r SnapshotRequest) ToSnapshot() domain.Snapshot {
	return domain.Snapshot{
		DefaultCountryCode:  r.DefaultCountryCode,
		AllowedCountries:    r.AllowedCountries,
		ShowCode:            r.ShowCode,
		ShowFlag:            r.ShowFlag,
		RawDigits:           r.RawDigits,
		SelectedCountryCode: countries.NormalizeCode(r.SelectedCountryCode),
	}
}

// FromSnapshot converts a domain snapshot into its request form.
func FromSnapshot(s domain.Snapshot) SnapshotRequest {
	return SnapshotRequest{
		DefaultCountryCode:  s.DefaultCountryCode,
		AllowedCountries:    s.AllowedCountries,
		ShowCode:            s.ShowCode,
		ShowFlag:            s.ShowFlag,
		RawDigits:           s.RawDigits,
		SelectedCountryCode: s.SelectedCountryCode,
	}
}

// DeriveRequest asks for every derived value of a snapshot. Candidate, when
// set, is validated against the selected country as well.
type DeriveRequest struct {
	Snapshot  SnapshotRequest `json:"snapshot"`
	Candidate *string         `json:"candidate,omitempty" validate:"omitempty,max=64"`
}

// SelectCountryRequest changes the selected country of a snapshot.
type SelectCountryRequest struct {
	Snapshot SnapshotRequest `json:"snapshot"`
	Code     string          `json:"code" validate:"required,max=8"`
}

// MaskRequest masks raw text for live editing.
type MaskRequest struct {
	Country string `json:"country" validate:"required,countrycode"`
	Text    string `json:"text" validate:"max=64"`
	Offset  *int   `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// MaskResponse is masked text plus the mapped cursor offset.
type MaskResponse struct {
	Text    string `json:"text" yaml:"text"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Offset  *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// PhoneFieldResponse is a snapshot with all derived values.
type PhoneFieldResponse struct {
	Snapshot                       domain.Snapshot `json:"snapshot" yaml:"snapshot"`
	Country                        CountryResponse `json:"country" yaml:"country"`
	NormalizedLocalNumber          string          `json:"normalizedLocalNumber" yaml:"normalizedLocalNumber"`
	PhoneCodeWithPrefix            string          `json:"phoneCodeWithPrefix" yaml:"phoneCodeWithPrefix"`
	PhoneCodeWithoutPrefix         string          `json:"phoneCodeWithoutPrefix" yaml:"phoneCodeWithoutPrefix"`
	LocalNumberWithoutPrefix       string          `json:"localNumberWithoutPrefix" yaml:"localNumberWithoutPrefix"`
	FullNumberWithoutCountryPrefix string          `json:"fullNumberWithoutCountryPrefix" yaml:"fullNumberWithoutCountryPrefix"`
	FullNumber                     string          `json:"fullNumber" yaml:"fullNumber"`
	FormattedFullNumber            string          `json:"formattedFullNumber" yaml:"formattedFullNumber"`
	FormattedLocalNumber           string          `json:"formattedLocalNumber" yaml:"formattedLocalNumber"`
	InternationalNumber            string          `json:"internationalNumber" yaml:"internationalNumber"`
	IsValid                        bool            `json:"isValid" yaml:"isValid"`
	IsValidStrict                  bool            `json:"isValidStrict" yaml:"isValidStrict"`
	CandidateValid                 *bool           `json:"candidateValid,omitempty" yaml:"candidateValid,omitempty"`
}

// ToCountryResponse maps a catalog entry.
func ToCountryResponse(c countries.Country) CountryResponse {
	return CountryResponse{
		Code:        c.Code,
		Name:        c.Name,
		PhoneNoCode: c.PhoneNoCode,
		Flag:        countries.Flag(c.Code),
	}
}

// ToPhoneFieldResponse maps a state.
func ToPhoneFieldResponse(st *domain.State) PhoneFieldResponse {
	return PhoneFieldResponse{
		Snapshot:                       st.Snapshot(),
		Country:                        ToCountryResponse(st.SelectedCountry()),
		NormalizedLocalNumber:          st.NormalizedLocalNumber(),
		PhoneCodeWithPrefix:            st.PhoneCodeWithPrefix(),
		PhoneCodeWithoutPrefix:         st.PhoneCodeWithoutPrefix(),
		LocalNumberWithoutPrefix:       st.LocalNumberWithoutPrefix(),
		FullNumberWithoutCountryPrefix: st.FullNumberWithoutCountryPrefix(),
		FullNumber:                     st.FullNumber(),
		FormattedFullNumber:            st.FormattedFullNumber(),
		FormattedLocalNumber:           st.FormattedLocalNumber().Text,
		InternationalNumber:            st.InternationalNumber(),
		IsValid:                        st.IsValid(),
		IsValidStrict:                  st.IsValidStrict(),
	}
}
