package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phonefield/internal/phonefield/transport"
	"phonefield/platform/apperr"

	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PHONEFIELD_DEFAULT_COUNTRY", "")
	t.Setenv("PHONEFIELD_ALLOWED_COUNTRIES", "")
	t.Setenv("PHONEFIELD_LOCALE", "C")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCountries(t *testing.T) {
	out, err := run(t, "countries", "--allowed", "ke,+256")
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "KE") || !strings.Contains(lines[1], "+256") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLookup(t *testing.T) {
	out, err := run(t, "lookup", "TZ", "-o", "json")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var c transport.CountryResponse
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Code != "tz" || c.PhoneNoCode != "+255" {
		t.Fatalf("unexpected country %+v", c)
	}

	if _, err := run(t, "lookup", "zz"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLocale(t *testing.T) {
	out, err := run(t, "locale", "sw_KE.UTF-8", "-o", "yaml")
	if err != nil {
		t.Fatalf("locale: %v", err)
	}
	if !strings.Contains(out, "code: ke") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDetect(t *testing.T) {
	out, err := run(t, "detect", "+256772123456")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if !strings.Contains(out, "UG") || !strings.HasSuffix(out, "+256772123456\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDerive(t *testing.T) {
	out, err := run(t, "derive", "--country", "ke", "0712345678", "-o", "yaml")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	var resp transport.PhoneFieldResponse
	if err := yaml.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FullNumber != "+254712345678" || resp.FormattedFullNumber != "+254 712 345 678" || !resp.IsValid {
		t.Fatalf("unexpected response %+v", resp)
	}

	if _, err := run(t, "derive", "--country", "zz", "1"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected KindValidation, got %v", err)
	}
}

func TestDeriveFromSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	snap := "defaultCountryCode: ug\nallowedCountries: [ke, ug]\nshowCode: true\nshowFlag: true\nrawDigits: \"0772123456\"\nselectedCountryCode: ug\n"
	if err := os.WriteFile(path, []byte(snap), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	out, err := run(t, "derive", "--snapshot", path, "--candidate", "+256772123456")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !strings.Contains(out, "+256772123456") || !strings.Contains(out, "candidate valid  true") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMask(t *testing.T) {
	out, err := run(t, "mask", "--country", "ke", "--offset", "3", "712345678")
	if err != nil {
		t.Fatalf("mask: %v", err)
	}
	if out != "712 345 678\n    ^\n" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, "mask", "712"); err == nil {
		t.Fatalf("expected missing --country to fail")
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	if _, err := run(t, "countries", "-o", "xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
