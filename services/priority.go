package services

import (
	"time"

	"github.com/dhruv-atomic-mui21/ai-enhanced-taskmanager/models"
)

// AutoPriority maps a due-date string to an urgency tier: less than 2 hours
// away is Urgent, under 24 High, under 72 Medium, anything else Low. "No Due
// Date" and unparseable strings fall back to Low. Overdue tasks come out
// Urgent since the difference goes negative.
//
// Task creation does not call this; the model collaborator supplies the
// priority there.
func AutoPriority(dueDate string) string {
	return autoPriorityAt(dueDate, time.Now())
}

func autoPriorityAt(dueDate string, now time.Time) string {
	if dueDate == models.NoDueDate {
		return models.PriorityLow
	}

	due, err := time.ParseInLocation(models.DateTimeLayout, dueDate, now.Location())
	if err != nil {
		// Date-only form, time component treated as midnight.
		due, err = time.ParseInLocation(models.DateLayout, dueDate, now.Location())
		if err != nil {
			return models.PriorityLow
		}
	}

	hoursUntilDue := due.Sub(now).Hours()
	switch {
	case hoursUntilDue < 2:
		return models.PriorityUrgent
	case hoursUntilDue < 24:
		return models.PriorityHigh
	case hoursUntilDue < 72:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
