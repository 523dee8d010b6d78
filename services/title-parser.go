package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
)

var (
	// Matches "at 6", "at 6:30", "at 6oclock", "at 6 o'clock". The optional
	// leading token tolerates phrases like "meet at the café at 6".
	timePattern = regexp.MustCompile(`(?i)(?:\S*at\S*\s+)?at\s*(\d{1,2}(?::\d{2})?)\s*(?:o'?clock)?`)

	datePattern = regexp.MustCompile(`(?i)\b(today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParsedTitle is the result of extracting due-date phrases from a raw title.
type ParsedTitle struct {
	CleanTitle string
	DueDate    string
}

// ProcessTitle extracts a time of day and a relative date keyword from a
// free-text title. "pay rent tomorrow at 9" becomes clean title "pay rent"
// with tomorrow's date and 09:00 as the due date. Malformed or absent
// phrases never fail; they are simply treated as not found, and a title with
// neither yields the literal "No Due Date".
func ProcessTitle(rawTitle string) ParsedTitle {
	return processTitleAt(rawTitle, time.Now())
}

func processTitleAt(rawTitle string, now time.Time) ParsedTitle {
	// Time extraction. Minutes default to :00; an unparseable hour counts
	// as no time found.
	var timeOfDay *time.Time
	if m := timePattern.FindStringSubmatch(rawTitle); m != nil {
		timeStr := m[1]
		if !strings.Contains(timeStr, ":") {
			timeStr += ":00"
		}
		if parsed, err := time.Parse("15:04", timeStr); err == nil {
			timeOfDay = &parsed
		}
	}

	// Date extraction. A weekday naming today's weekday always means next
	// week, so a zero delta advances a full seven days.
	var date *time.Time
	if m := datePattern.FindStringSubmatch(rawTitle); m != nil {
		keyword := strings.ToLower(m[1])
		switch keyword {
		case "today":
			d := now
			date = &d
		case "tomorrow":
			d := now.AddDate(0, 0, 1)
			date = &d
		default:
			daysAhead := (int(weekdayNames[keyword]) - int(now.Weekday()) + 7) % 7
			if daysAhead == 0 {
				daysAhead = 7
			}
			d := now.AddDate(0, 0, daysAhead)
			date = &d
		}
	}

	var dueDate string
	switch {
	case date != nil && timeOfDay != nil:
		dueDate = date.Format(models.DateLayout) + " " + timeOfDay.Format("15:04")
	case date != nil:
		dueDate = date.Format(models.DateLayout)
	case timeOfDay != nil:
		dueDate = now.Format(models.DateLayout) + " " + timeOfDay.Format("15:04")
	default:
		dueDate = models.NoDueDate
	}

	cleaned := timePattern.ReplaceAllString(rawTitle, "")
	cleaned = datePattern.ReplaceAllString(cleaned, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	return ParsedTitle{CleanTitle: cleaned, DueDate: dueDate}
}
