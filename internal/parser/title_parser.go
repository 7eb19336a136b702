package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/agenda/internal/models"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title         string
	Tags          []string
	Priority      models.Priority
	Important     bool
	DueDate       *time.Time
	SuggestedDate *time.Time // what InferDate reads from the cleaned title
	Errors        []string
}

var (
	tagRegex       = regexp.MustCompile(`#([\p{L}0-9_,-]+)`)
	priorityRegex  = regexp.MustCompile(`(?:^|\s)\+([a-zA-Z0-9]+)`)
	importantRegex = regexp.MustCompile(`(?:^|\s)!(?:\s|$)`)
	dueRegex       = regexp.MustCompile(`due:((?:próximo|el)\s+\S+|\S+)`)
)

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title #tag1,tag2 +p1 ! due:3days"
func ParseTitle(input string, now time.Time) ParsedTask {
	result := ParsedTask{
		Priority: models.DefaultPriority,
		Tags:     []string{},
		Errors:   []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		for _, tag := range strings.Split(match[1], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" && !containsFold(result.Tags, tag) {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Extract priority (+p1, +2)
	if matches := priorityRegex.FindStringSubmatch(input); len(matches) > 1 {
		priority, err := models.ParsePriority(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid priority '"+matches[1]+"'. Use: p1, p2, p3 or p4")
		} else {
			result.Priority = priority
		}
		input = priorityRegex.ReplaceAllString(input, " ")
	}

	// A standalone "!" marks the task as important
	if importantRegex.MatchString(input) {
		result.Important = true
		input = importantRegex.ReplaceAllString(input, " ")
	}

	// Extract due date (due:3days, due:15/12/2026, due:mañana, due:próximo viernes)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 1 {
		dueDate, err := ParseDueDate(matches[1], now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+matches[1]+"': "+err.Error())
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	result.Title = strings.Join(strings.Fields(input), " ")
	result.SuggestedDate = InferDate(result.Title, now)

	return result
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
