package inbox

import (
	"fmt"
	"sort"
	"time"

	"github.com/openinbox/inboxd/internal/models"
)

// BuildSections sorts messages newest-first and buckets them into the fixed
// date tiers: Today, Yesterday, one bucket per weekday of the current week,
// Last Week, one bucket per calendar month within the past year, then one per
// calendar year. Tiers are relative to now rather than fixed boundaries so
// the grouping tracks the reader's sense of recency. Empty tiers are omitted.
func BuildSections(msgs []models.MessageSnapshot, now time.Time) []models.EmailSection {
	if len(msgs) == 0 {
		return nil
	}

	sorted := make([]models.MessageSnapshot, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	// With input newest-first, appending buckets in first-encounter order
	// yields the tier sequence directly: every tier covers a strictly older
	// date range than the one before it.
	var sections []models.EmailSection
	index := make(map[string]int)

	for _, m := range sorted {
		id, title := bucketFor(m.Date, now)
		if i, ok := index[id]; ok {
			sections[i].Messages = append(sections[i].Messages, m)
			continue
		}
		index[id] = len(sections)
		sections = append(sections, models.EmailSection{
			ID:       id,
			Title:    title,
			Messages: []models.MessageSnapshot{m},
		})
	}

	return sections
}

// bucketFor maps a message date onto its display tier relative to now.
func bucketFor(date, now time.Time) (id, title string) {
	date = date.In(now.Location())
	day := startOfDay(date)
	today := startOfDay(now)

	// Clock skew can hand us dates slightly in the future; fold them into
	// Today rather than inventing a tier for them.
	if !day.Before(today) {
		return "today", "Today"
	}

	if day.Equal(today.AddDate(0, 0, -1)) {
		return "yesterday", "Yesterday"
	}

	weekStart := startOfWeek(today)
	if !day.Before(weekStart) {
		weekday := date.Weekday()
		return fmt.Sprintf("weekday-%d", int(weekday)), weekday.String()
	}

	if !day.Before(weekStart.AddDate(0, 0, -7)) {
		return "last-week", "Last Week"
	}

	if !day.Before(today.AddDate(0, 0, -365)) {
		return date.Format("month-2006-01"), date.Format("January 2006")
	}

	return date.Format("year-2006"), date.Format("2006")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday beginning the week containing t.
func startOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -daysSinceMonday)
}
