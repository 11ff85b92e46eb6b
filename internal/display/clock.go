// Package display renders record values for presentation: locale-aware
// clock times and the fallback text for unset values.
package display

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// NotInformed is shown in place of an empty optional value.
const NotInformed = "Não informado"

var (
	supported = []language.Tag{
		language.BrazilianPortuguese,
		language.AmericanEnglish,
		language.LatinAmericanSpanish,
	}
	matcher = language.NewMatcher(supported)
)

// Clock formats times as hour and minute for a locale and time zone.
type Clock struct {
	tag      language.Tag
	layout   string
	location *time.Location
}

// NewClock resolves locale against the supported locales and loads the
// named time zone. An empty zone keeps times in their own location.
func NewClock(locale, zone string) (*Clock, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	_, idx, _ := matcher.Match(tag)
	matched := supported[idx]

	var loc *time.Location
	if zone != "" {
		loc, err = time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", zone, err)
		}
	}

	return &Clock{
		tag:      matched,
		layout:   layoutFor(matched),
		location: loc,
	}, nil
}

// MustClock is NewClock for static, known-good arguments.
func MustClock(locale, zone string) *Clock {
	c, err := NewClock(locale, zone)
	if err != nil {
		panic(err)
	}
	return c
}

func layoutFor(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == "en" {
		return "03:04 PM"
	}
	return "15:04"
}

// Locale returns the matched locale tag.
func (c *Clock) Locale() string {
	return c.tag.String()
}

// Location returns the configured zone, or time.Local when none was set.
func (c *Clock) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Format renders t as a two-digit hour and minute. A nil time renders as
// the empty string.
func (c *Clock) Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	v := *t
	if c.location != nil {
		v = v.In(c.location)
	}
	return v.Format(c.layout)
}

// Parse reads a clock time typed as "HH:MM" and places it on the calendar
// day of ref in the clock's zone.
func (c *Clock) Parse(s string, ref time.Time) (time.Time, error) {
	hm, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	loc := c.Location()
	day := ref.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}

// OrFallback returns s, or NotInformed when s is empty.
func OrFallback(s string) string {
	if s == "" {
		return NotInformed
	}
	return s
}
