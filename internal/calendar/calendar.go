// Package calendar converts between weekday names, weekday numbers and the
// date layouts used for display and storage.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// NotFound is returned by DayOfWeekFromName when the name is not recognised.
const NotFound = -1

// Date layouts.
const (
	DisplayLayout = "02/01/2006"
	StorageLayout = "2006-01-02"
)

// weekdayNames lists full and abbreviated names indexed Sunday first.
type weekdayNames struct {
	full  [7]string
	short [7]string
}

var supported = []language.Tag{
	language.English,
	language.Indonesian,
	language.French,
	language.German,
	language.Spanish,
}

var names = map[language.Base]weekdayNames{
	base(language.English): {
		full:  [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		short: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
	base(language.Indonesian): {
		full:  [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"},
		short: [7]string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"},
	},
	base(language.French): {
		full:  [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		short: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	},
	base(language.German): {
		full:  [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		short: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
	},
	base(language.Spanish): {
		full:  [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		short: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	},
}

var matcher = language.NewMatcher(supported)

func base(tag language.Tag) language.Base {
	b, _ := tag.Base()
	return b
}

func namesFor(locale language.Tag) weekdayNames {
	_, idx, _ := matcher.Match(locale)
	return names[base(supported[idx])]
}

// ParseLocale parses a BCP 47 tag such as "en-US", defaulting to English.
func ParseLocale(raw string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// DayOfWeekFromName resolves a weekday name for locale, trying full names
// before abbreviations. The result runs 1 (Sunday) to 7 (Saturday), or
// NotFound.
func DayOfWeekFromName(name string, locale language.Tag) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return NotFound
	}
	n := namesFor(locale)
	for i, full := range n.full {
		if strings.EqualFold(full, name) {
			return i + 1
		}
	}
	for i, short := range n.short {
		if strings.EqualFold(short, name) {
			return i + 1
		}
	}
	return NotFound
}

// WeekdayNumber returns the 1 (Sunday) to 7 (Saturday) weekday of t.
func WeekdayNumber(t time.Time) int {
	return int(t.Weekday()) + 1
}

// WeekdayName returns the full locale name for a 1..7 weekday number.
func WeekdayName(day int, locale language.Tag) string {
	if day < 1 || day > 7 {
		return ""
	}
	return namesFor(locale).full[day-1]
}

// FormatDisplay renders t as dd/MM/yyyy.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// ParseDisplay parses a dd/MM/yyyy date in the local time zone.
func ParseDisplay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DisplayLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse display date %q: %w", s, err)
	}
	return t, nil
}

// FormatStorage renders t as yyyy-MM-dd.
func FormatStorage(t time.Time) string {
	return t.Format(StorageLayout)
}

// ParseStorage parses a yyyy-MM-dd date in the local time zone.
func ParseStorage(s string) (time.Time, error) {
	t, err := time.ParseInLocation(StorageLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse storage date %q: %w", s, err)
	}
	return t, nil
}

// ParseAny accepts either the storage or the display layout.
func ParseAny(s string) (time.Time, error) {
	if t, err := ParseStorage(s); err == nil {
		return t, nil
	}
	return ParseDisplay(s)
}

// DisplayToStorage converts dd/MM/yyyy into yyyy-MM-dd.
func DisplayToStorage(s string) (string, error) {
	t, err := ParseDisplay(s)
	if err != nil {
		return "", err
	}
	return FormatStorage(t), nil
}

// StorageToDisplay converts yyyy-MM-dd into dd/MM/yyyy, returning the input
// unchanged when it does not parse.
func StorageToDisplay(s string) string {
	t, err := ParseStorage(s)
	if err != nil {
		return s
	}
	return FormatDisplay(t)
}

// AddDays shifts a storage date by days.
func AddDays(s string, days int) (string, error) {
	t, err := ParseStorage(s)
	if err != nil {
		return "", err
	}
	return FormatStorage(t.AddDate(0, 0, days)), nil
}

// IsPastDate reports whether the storage date is before today.
func IsPastDate(s string, today time.Time) bool {
	t, err := ParseStorage(s)
	if err != nil {
		return false
	}
	return t.Before(truncateDay(today))
}

// EndTime adds minutes to an "HH:MM" start, wrapping past midnight.
func EndTime(start string, minutes int) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(start))
	if err != nil {
		return "", fmt.Errorf("parse time %q: %w", start, err)
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04"), nil
}

// RelativeDescription describes a storage date relative to today.
func RelativeDescription(s string, today time.Time) string {
	t, err := ParseStorage(s)
	if err != nil {
		return s
	}
	diff := daysBetween(truncateDay(today), t)
	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff > 1 && diff <= 7:
		return fmt.Sprintf("In %d days", diff)
	case diff < -1 && diff >= -7:
		return fmt.Sprintf("%d days ago", -diff)
	default:
		return FormatDisplay(t)
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
