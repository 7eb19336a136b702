package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// relativePhrases is checked in order; the first phrase contained in the text wins.
var relativePhrases = []string{
	"hoy",
	"mañana",
	"próximo lunes",
	"próximo martes",
	"próximo miércoles",
	"próximo jueves",
	"próximo viernes",
	"próximo sábado",
	"próximo domingo",
	"el lunes",
	"el martes",
	"el miércoles",
	"el jueves",
	"el viernes",
	"el sábado",
	"el domingo",
}

var weekdays = map[string]time.Weekday{
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miércoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sábado":    time.Saturday,
	"domingo":   time.Sunday,
}

var (
	explicitDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex     = regexp.MustCompile(`^(\d+)\s*(hour|hours|day|days|week|weeks)$`)
)

// InferDate proposes a date for free-form task text relative to now.
// Returns nil when nothing in the text looks like a date.
//
// Weekday phrases always resolve to a day strictly after today, so
// "el lunes" on a Monday means the following Monday, same as "próximo lunes".
func InferDate(text string, now time.Time) *time.Time {
	lower := cases.Lower(language.Spanish).String(text)

	for _, phrase := range relativePhrases {
		if !strings.Contains(lower, phrase) {
			continue
		}
		switch phrase {
		case "hoy":
			return &now
		case "mañana":
			tomorrow := now.AddDate(0, 0, 1)
			return &tomorrow
		}
		fields := strings.Fields(phrase)
		target, ok := weekdays[fields[len(fields)-1]]
		if !ok {
			continue
		}
		daysToAdd := int(target) - int(now.Weekday())
		if daysToAdd <= 0 {
			daysToAdd += 7
		}
		next := now.AddDate(0, 0, daysToAdd)
		return &next
	}

	if date, err := parseDateFormat(text, now.Location()); err == nil {
		return date
	}
	return nil
}

// ParseDueDate parses an explicit due date given on the command line.
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2026")
// - X days / X hours / X weeks (e.g., "3 days", "24 hours")
// - any phrase InferDate understands ("mañana", "próximo viernes")
func ParseDueDate(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if dueDate, err := parseDateFormat(input, now.Location()); err == nil {
		endOfDay := dueDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		return &endOfDay, nil
	}

	if dueDate, err := parseRelativeTime(input, now); err == nil {
		return dueDate, nil
	}

	if dueDate := InferDate(input, now); dueDate != nil {
		return dueDate, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, X days, X hours, X weeks, hoy, mañana or próximo <día>")
}

// parseDateFormat parses d/M/yyyy strictly, rejecting surrounding text and
// dates that do not exist in the calendar.
func parseDateFormat(input string, loc *time.Location) (*time.Time, error) {
	matches := explicitDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &date, nil
}

// parseRelativeTime parses relative time formats like "3 days", "24 hours", etc.
func parseRelativeTime(input string, now time.Time) (*time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(strings.ToLower(input))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := 23*time.Hour + 59*time.Minute + 59*time.Second

	switch matches[2] {
	case "hour", "hours":
		if amount < 1 || amount > 8760 {
			return nil, fmt.Errorf("hours must be between 1 and 8760")
		}
		dueDate := now.Add(time.Duration(amount) * time.Hour)
		return &dueDate, nil

	case "day", "days":
		if amount < 1 || amount > 365 {
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		dueDate := today.AddDate(0, 0, amount).Add(endOfDay)
		return &dueDate, nil

	case "week", "weeks":
		if amount < 1 || amount > 52 {
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		dueDate := today.AddDate(0, 0, amount*7).Add(endOfDay)
		return &dueDate, nil

	default:
		return nil, fmt.Errorf("unsupported time unit")
	}
}

// FormatDueDate formats a due date for display relative to now
func FormatDueDate(dueDate *time.Time, now time.Time) string {
	if dueDate == nil {
		return ""
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	local := dueDate.In(now.Location())
	dueDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := local.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
