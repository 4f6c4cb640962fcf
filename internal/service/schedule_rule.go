package service

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/noah-isme/yoga-studio-admin/internal/calendar"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
)

// ScheduleRule checks that a class instance date falls on its course weekday.
type ScheduleRule struct {
	locale language.Tag
}

// NewScheduleRule builds a rule that resolves course day names in locale.
// Names that do not resolve in locale are retried in English, the language
// course days are stored in.
func NewScheduleRule(locale language.Tag) ScheduleRule {
	return ScheduleRule{locale: locale}
}

// Check returns date in storage format when its weekday matches courseDay.
func (r ScheduleRule) Check(date time.Time, courseDay string) (string, error) {
	courseNumber := calendar.DayOfWeekFromName(courseDay, r.locale)
	if courseNumber == calendar.NotFound {
		courseNumber = calendar.DayOfWeekFromName(courseDay, language.English)
	}
	if courseNumber == calendar.NotFound {
		return "", appErrors.Clone(appErrors.ErrInvalidCourseDay, fmt.Sprintf("course day %q is not a recognised weekday", courseDay))
	}

	dateNumber := calendar.WeekdayNumber(date)
	if dateNumber != courseNumber {
		return "", appErrors.Clone(appErrors.ErrScheduleMismatch, fmt.Sprintf(
			"selected date (%s) doesn't match the scheduled day (%s)",
			calendar.WeekdayName(dateNumber, r.locale),
			calendar.WeekdayName(courseNumber, r.locale),
		))
	}
	return calendar.FormatStorage(date), nil
}
