package countries

import (
	"strings"

	"golang.org/x/text/language"
)

// ForLocale resolves a host locale to a catalog country. It accepts BCP 47
// tags ("en-KE") as well as POSIX locale names ("sw_KE.UTF-8"). When the tag
// carries no region the most likely region for its language is used. Any
// failure falls back to Default.
func ForLocale(locale string) Country {
	if c, ok := RegionForLocale(locale); ok {
		return c
	}
	return Default()
}

// RegionForLocale is ForLocale without the fallback.
func RegionForLocale(locale string) (Country, bool) {
	tag, err := language.Parse(cleanLocale(locale))
	if err != nil {
		return Country{}, false
	}

	region, conf := tag.Region()
	if conf == language.No {
		return Country{}, false
	}

	c, err := Lookup(strings.ToLower(region.String()))
	if err != nil {
		return Country{}, false
	}
	return c, true
}

// cleanLocale turns a POSIX locale name into a BCP 47 tag by dropping the
// codeset and modifier and replacing underscores.
func cleanLocale(locale string) string {
	s := strings.TrimSpace(locale)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}
