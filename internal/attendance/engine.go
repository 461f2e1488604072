// Package attendance turns a log of join/leave events into a presence report.
//
// Each participant's events are ordered by time and the gaps between
// consecutive events are summed. A participant whose sum is zero (usually a
// join with no matching leave) is treated as connected until the last event
// seen anywhere in the log. The total is then compared against a threshold:
// totals at or above it are Present, the rest Absent.
//
// The package holds no state; Compute is safe to call concurrently on
// independent tables.
package attendance

import (
	"sort"
)

// Status is the presence classification of a participant.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Event is one row of the attendance log.
type Event struct {
	FullName  string
	Action    string
	Timestamp Instant
	Row       int // 1-based position among data rows
}

// Result is one line of the presence report.
type Result struct {
	FullName     string  `json:"full_name"`
	TotalSeconds float64 `json:"total_duration_seconds"`
	Status       Status  `json:"status"`
}

// Classify returns Present when total meets the threshold.
func Classify(totalSeconds float64, thresholdSeconds int) Status {
	if totalSeconds >= float64(thresholdSeconds) {
		return StatusPresent
	}
	return StatusAbsent
}

// Compute validates t and summarizes its events. The only error returned is
// *SchemaError; no results are produced in that case.
func Compute(t *Table, thresholdSeconds int) ([]Result, error) {
	events, err := t.Events()
	if err != nil {
		return nil, err
	}
	return Summarize(events, thresholdSeconds), nil
}

// Summarize computes one Result per distinct participant, ordered by name.
// Events with an empty name are not participants but still extend the end of
// the session used for the never-left correction.
func Summarize(events []Event, thresholdSeconds int) []Result {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FullName != sorted[j].FullName {
			return sorted[i].FullName < sorted[j].FullName
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	sessionEnd := Null()
	for _, ev := range sorted {
		if sessionEnd.Before(ev.Timestamp) {
			sessionEnd = ev.Timestamp
		}
	}

	var results []Result
	for start := 0; start < len(sorted); {
		end := start + 1
		for end < len(sorted) && sorted[end].FullName == sorted[start].FullName {
			end++
		}
		group := sorted[start:end]
		start = end

		if group[0].FullName == "" {
			continue
		}

		total := sessionSeconds(group)
		if total == 0 {
			total = sessionEnd.Sub(firstValid(group))
			if total < 0 {
				total = 0
			}
		}

		results = append(results, Result{
			FullName:     group[0].FullName,
			TotalSeconds: total,
			Status:       Classify(total, thresholdSeconds),
		})
	}
	return results
}

// sessionSeconds sums the gaps between consecutive events of one participant.
// Gaps touching a null timestamp, and negative gaps, count as zero.
func sessionSeconds(group []Event) float64 {
	var total float64
	for i := 1; i < len(group); i++ {
		if gap := group[i].Timestamp.Sub(group[i-1].Timestamp); gap > 0 {
			total += gap
		}
	}
	return total
}

// firstValid returns the earliest non-null timestamp of a sorted group, or
// null when the participant has none.
func firstValid(group []Event) Instant {
	for _, ev := range group {
		if ev.Timestamp.Valid() {
			return ev.Timestamp
		}
	}
	return Null()
}
