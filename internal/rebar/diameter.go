// Package rebar resolves bar size tokens to metric diameters and derives the
// code spacing and column limits that depend on them.
package rebar

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/settings"
)

// FallbackDiameterCm is used whenever a token cannot be resolved: the 3/4" bar.
const FallbackDiameterCm = 0.75 * cmPerInch

const cmPerInch = 2.54

var (
	mixedSepRe = regexp.MustCompile(`^(\d+)\s*(?:-|\s)\s*(\d+\s*/\s*\d+)$`)
	mixedRe    = regexp.MustCompile(`^(\d+)-(\d+)/(\d+)$`)
	fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)
	mmRe       = regexp.MustCompile(`^(\d+(?:\.\d+)?)mm$`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

// Diameter is a bar size token in canonical form, e.g. "3/4", "1-3/8", "12mm".
type Diameter string

// ParseDiameter canonicalises a user token.
func ParseDiameter(token string) Diameter {
	return Diameter(Canonical(token))
}

func (d Diameter) String() string { return string(d) }

// IsZero reports whether no size was given.
func (d Diameter) IsZero() bool { return d == "" }

// Cm resolves the diameter against the settings bar table.
func (d Diameter) Cm(s settings.SteelLayoutSettings) float64 {
	return DiameterToCm(string(d), s)
}

// UnmarshalText canonicalises tokens read from JSON, YAML or TOML.
func (d *Diameter) UnmarshalText(text []byte) error {
	*d = ParseDiameter(string(text))
	return nil
}

// MarshalText writes the canonical token.
func (d Diameter) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

// Canonical normalises the dash and space variants of a bar token so that
// "1 3/8", "1-3/8", `1 - 3/8"` and "1-3/8in" share one key.
func Canonical(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	t = strings.TrimSuffix(t, "in")
	t = strings.TrimRight(t, `"' `)
	t = strings.TrimPrefix(t, "ø")
	t = strings.TrimSpace(t)
	if m := mixedSepRe.FindStringSubmatch(t); m != nil {
		return m[1] + "-" + spacesRe.ReplaceAllString(m[2], "")
	}
	if strings.HasSuffix(t, "mm") {
		return spacesRe.ReplaceAllString(t, "")
	}
	if strings.Contains(t, "/") {
		return spacesRe.ReplaceAllString(t, "")
	}
	return t
}

// DiameterToCm resolves token to a diameter in centimetres. The settings table
// wins; otherwise the token is read as inches (decimal, "a/b" or "n a/b") or as
// millimetres when it ends in "mm". It never fails: anything unreadable
// resolves to FallbackDiameterCm.
func DiameterToCm(token string, s settings.SteelLayoutSettings) float64 {
	cm, _ := Resolve(token, s)
	return cm
}

// Resolve is DiameterToCm that also reports whether the token was understood.
// When ok is false the returned diameter is FallbackDiameterCm.
func Resolve(token string, s settings.SteelLayoutSettings) (cm float64, ok bool) {
	key := Canonical(token)
	if key == "" {
		return FallbackDiameterCm, false
	}
	if cm, ok := lookup(key, s.RebarDiametersCm); ok && valid(cm) {
		return cm, true
	}
	if cm, ok := parse(key); ok && valid(cm) {
		return cm, true
	}
	return FallbackDiameterCm, false
}

func lookup(key string, table map[string]float64) (float64, bool) {
	if cm, ok := table[key]; ok {
		return cm, true
	}
	// Tables written by hand may use non-canonical keys.
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if Canonical(k) == key {
			return table[k], true
		}
	}
	return 0, false
}

func parse(key string) (float64, bool) {
	if m := mmRe.FindStringSubmatch(key); m != nil {
		mm, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return mm / 10, true
	}
	if m := mixedRe.FindStringSubmatch(key); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		frac, ok := fraction(m[2], m[3])
		if !ok {
			return 0, false
		}
		return (whole + frac) * cmPerInch, true
	}
	if m := fractionRe.FindStringSubmatch(key); m != nil {
		frac, ok := fraction(m[1], m[2])
		if !ok {
			return 0, false
		}
		return frac * cmPerInch, true
	}
	inches, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return 0, false
	}
	return inches * cmPerInch, true
}

func fraction(num, den string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func valid(cm float64) bool {
	return cm > 0 && !math.IsInf(cm, 0) && !math.IsNaN(cm)
}
