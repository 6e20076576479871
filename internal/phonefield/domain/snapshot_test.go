package domain

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"phonefield/platform/apperr"
)

func derived(st *State) []interface{} {
	return []interface{}{
		st.NormalizedLocalNumber(),
		st.PhoneCodeWithPrefix(),
		st.PhoneCodeWithoutPrefix(),
		st.LocalNumberWithoutPrefix(),
		st.FullNumberWithoutCountryPrefix(),
		st.FullNumber(),
		st.FormattedFullNumber(),
		st.FormattedLocalNumber().Text,
		st.IsValid(),
		st.IsValidStrict(),
		st.InternationalNumber(),
		st.RawDigits(),
		st.DefaultCountryCode(),
		st.AllowedCountries(),
		st.SelectedCountryCode(),
		st.ShowCode(),
		st.ShowFlag(),
		len(st.Countries()),
	}
}

func TestSnapshotRestoreReproducesDerivedValues(t *testing.T) {
	st, err := New(Options{
		DefaultCountryCode: "ke",
		AllowedCountries:   []string{"ke", "ug", "+255"},
		ShowCode:           true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st.SetRawDigits("0772 123 456")
	if err := st.SetCountry("ug"); err != nil {
		t.Fatalf("SetCountry: %v", err)
	}

	restored, err := Restore(st.Snapshot())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(derived(st), derived(restored)) {
		t.Fatalf("derived values differ:\n got %v\nwant %v", derived(restored), derived(st))
	}
}

func TestSnapshotRestoreKeepsLocaleDefault(t *testing.T) {
	st, err := New(Options{Locale: LocaleFunc(func() string { return "sw_TZ.UTF-8" })})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st.SetRawDigits("0712345678")

	restored, err := Restore(st.Snapshot())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.DefaultCountryCode() != "tz" {
		t.Fatalf("expected the locale default to be stored, got %q", restored.DefaultCountryCode())
	}
	if !reflect.DeepEqual(derived(st), derived(restored)) {
		t.Fatalf("derived values differ:\n got %v\nwant %v", derived(restored), derived(st))
	}
}

func TestSnapshotSurvivesEncoding(t *testing.T) {
	st := newKenya(t, "0712345678")
	snap := st.Snapshot()

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON Snapshot
	if err := json.Unmarshal(raw, &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}

	doc, err := yaml.Marshal(snap)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromYAML Snapshot
	if err := yaml.Unmarshal(doc, &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	for name, s := range map[string]Snapshot{"json": fromJSON, "yaml": fromYAML} {
		restored, err := Restore(s)
		if err != nil {
			t.Fatalf("%s: Restore: %v", name, err)
		}
		if restored.FullNumber() != "+254712345678" {
			t.Fatalf("%s: unexpected full number %q", name, restored.FullNumber())
		}
	}
}

func TestRestoreRejectsSelectionOutsideSubset(t *testing.T) {
	_, err := Restore(Snapshot{
		DefaultCountryCode:  "ke",
		AllowedCountries:    []string{"ke"},
		SelectedCountryCode: "tz",
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestRestoreWithoutSelectionUsesDefault(t *testing.T) {
	st, err := Restore(Snapshot{DefaultCountryCode: "tz", RawDigits: "0712345678"})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if st.FullNumber() != "+255712345678" {
		t.Fatalf("unexpected full number %q", st.FullNumber())
	}
}
