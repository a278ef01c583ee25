package task

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidDueDate is returned when a due date cannot be parsed.
	ErrInvalidDueDate = errors.New("due date must be a valid date")
	// ErrPastDueDate is returned when a due date falls before today.
	ErrPastDueDate = errors.New("due date cannot be in the past")
)

// DueDateLayout is the stored form of a due date: a calendar day with
// no time-of-day component.
const DueDateLayout = "2006-01-02"

// NormalizeDueDate parses client-supplied due date text and returns it
// in the stored date-only form. Empty input (the client omitted the
// field, sent null, or sent an empty string) normalizes to "" meaning
// "no due date". Accepts a bare date or a full RFC 3339 timestamp; a
// timestamp is reduced to its calendar day in server-local time.
func NormalizeDueDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return "", nil
	}

	if d, err := time.ParseInLocation(DueDateLayout, raw, time.Local); err == nil {
		return d.Format(DueDateLayout), nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.Local().Format(DueDateLayout), nil
	}
	return "", ErrInvalidDueDate
}

// ValidateDueDate checks a candidate due date at write time. Absence is
// always valid. A present date must not fall on a calendar day earlier
// than today's calendar day in server-local time; a date equal to today
// is accepted.
func ValidateDueDate(raw string, now time.Time) error {
	due, err := NormalizeDueDate(raw)
	if err != nil {
		return err
	}
	if due == "" {
		return nil
	}

	day, err := time.ParseInLocation(DueDateLayout, due, time.Local)
	if err != nil {
		return ErrInvalidDueDate
	}
	if day.Before(dayStart(now)) {
		return ErrPastDueDate
	}
	return nil
}

// Overdue reports whether the task is past its due date as of now.
// A task is overdue only when it has a due date, its status is not
// completed, and the end of the due date's calendar day lies strictly
// before the start of today. A task due today is not overdue. A stored
// due date that fails to parse counts as not overdue rather than
// raising an error.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == "" || t.Status == StatusCompleted {
		return false
	}

	day, err := time.ParseInLocation(DueDateLayout, t.DueDate, time.Local)
	if err != nil {
		return false
	}

	endOfDue := day.Add(24*time.Hour - time.Millisecond)
	return endOfDue.Before(dayStart(now))
}

// dayStart returns midnight at the start of t's calendar day in
// server-local time.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
