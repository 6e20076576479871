package domain

// Snapshot is the serializable form of a State: the constructor inputs plus
// the two mutable fields. Restoring it reproduces every derived value.
type Snapshot struct {
	DefaultCountryCode  string   `json:"defaultCountryCode" yaml:"defaultCountryCode"`
	AllowedCountries    []string `json:"allowedCountries,omitempty" yaml:"allowedCountries,omitempty"`
	ShowCode            bool     `json:"showCode" yaml:"showCode"`
	ShowFlag            bool     `json:"showFlag" yaml:"showFlag"`
	RawDigits           string   `json:"rawDigits" yaml:"rawDigits"`
	SelectedCountryCode string   `json:"selectedCountryCode" yaml:"selectedCountryCode"`
}

// Snapshot captures the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		DefaultCountryCode:  s.defaultCode,
		AllowedCountries:    s.AllowedCountries(),
		ShowCode:            s.showCode,
		ShowFlag:            s.showFlag,
		RawDigits:           s.rawDigits,
		SelectedCountryCode: s.selected,
	}
}

// Restore rebuilds a State from a snapshot. An empty selected code keeps the
// default selection; a selected code outside the subset is a not found error.
func Restore(snap Snapshot) (*State, error) {
	st, err := New(Options{
		DefaultCountryCode: snap.DefaultCountryCode,
		AllowedCountries:   snap.AllowedCountries,
		ShowCode:           snap.ShowCode,
		ShowFlag:           snap.ShowFlag,
	})
	if err != nil {
		return nil, err
	}

	st.SetRawDigits(snap.RawDigits)
	if snap.SelectedCountryCode != "" {
		if err := st.SetCountry(snap.SelectedCountryCode); err != nil {
			return nil, err
		}
	}
	return st, nil
}
