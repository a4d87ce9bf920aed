package schedule

import (
	"reflect"
	"strings"

	"remindly/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// weekdays is the canonical day-name set, Title-cased.
var weekdays = map[string]string{
	"monday":    "Monday",
	"tuesday":   "Tuesday",
	"wednesday": "Wednesday",
	"thursday":  "Thursday",
	"friday":    "Friday",
	"saturday":  "Saturday",
	"sunday":    "Sunday",
}

// CanonicalDay trims and Title-cases a day name, returning false if it is not
// one of the seven weekday names.
func CanonicalDay(s string) (string, bool) {
	day, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return day, ok
}

// Normalize converts any of the stored schedule encodings into a
// CanonicalSchedule. It never fails: unrecognized input, and every malformed
// row inside recognized input, simply contributes no entries.
//
// Recognized encodings:
//
//	(a) {headers: [time, ...], rows: [[day, cell, ...], ...]} — grid layout,
//	    header i-1 gives the time for cell i; empty cells are skipped.
//	(b) {rows: [{day, time, task}, ...]} — record rows.
//	(c) [{day, time, task}, ...] — bare record array.
func Normalize(raw any) models.CanonicalSchedule {
	var entries []models.ScheduleEntry

	if rows, ok := asSlice(raw); ok {
		entries = normalizeRecords(rows)
	} else if obj, ok := asMap(raw); ok {
		rows, hasRows := asSlice(lookup(obj, "rows"))
		headers, hasHeaders := asSlice(lookup(obj, "headers"))
		switch {
		case hasRows && rowsAreRecords(rows):
			entries = normalizeRecords(rows)
		case hasRows && hasHeaders:
			entries = normalizeGrid(headers, rows)
		}
	}

	return models.CanonicalSchedule{Entries: dedupe(entries)}
}

// normalizeGrid handles encoding (a): each row starts with the day name and
// cell i pairs with headers[i-1].
func normalizeGrid(headers, rows []any) []models.ScheduleEntry {
	var entries []models.ScheduleEntry
	for _, r := range rows {
		cells, ok := asSlice(r)
		if ok && len(cells) > 0 {
			day, dayOK := CanonicalDay(asString(cells[0]))
			if !dayOK {
				continue
			}
			for i := 1; i < len(cells) && i-1 < len(headers); i++ {
				text := strings.TrimSpace(asString(cells[i]))
				if text == "" {
					continue
				}
				display := strings.TrimSpace(asString(headers[i-1]))
				at, err := ParseClock(display)
				if err != nil {
					continue
				}
				entries = append(entries, models.ScheduleEntry{
					Day:     day,
					Time:    at,
					Text:    text,
					Display: display,
				})
			}
		}
	}
	return entries
}

// normalizeRecords handles encodings (b) and (c).
func normalizeRecords(rows []any) []models.ScheduleEntry {
	var entries []models.ScheduleEntry
	for _, r := range rows {
		rec, ok := asMap(r)
		if !ok {
			continue
		}
		day, dayOK := CanonicalDay(asString(lookup(rec, "day")))
		if !dayOK {
			continue
		}
		display := strings.TrimSpace(asString(lookup(rec, "time")))
		at, err := ParseClock(display)
		if err != nil {
			continue
		}
		text := strings.TrimSpace(asString(lookup(rec, "task", "text")))
		if text == "" {
			continue
		}
		entries = append(entries, models.ScheduleEntry{
			Day:     day,
			Time:    at,
			Text:    text,
			Display: display,
		})
	}
	return entries
}

// dedupe keeps one entry per (day, hour, minute) slot, last writer wins:
// a later row replaces an earlier one in place, matching the intent that
// re-saving a schedule overwrites the prior value at that slot.
func dedupe(entries []models.ScheduleEntry) []models.ScheduleEntry {
	if len(entries) == 0 {
		return nil
	}
	type slot struct {
		day          string
		hour, minute int
	}
	seen := make(map[slot]int, len(entries))
	out := entries[:0]
	for _, e := range entries {
		k := slot{e.Day, e.Time.Hour, e.Time.Minute}
		if i, dup := seen[k]; dup {
			out[i] = e
			continue
		}
		seen[k] = len(out)
		out = append(out, e)
	}
	return out
}

// rowsAreRecords reports whether the first row is an object carrying a day
// key, which distinguishes encoding (b) from the grid encoding (a).
func rowsAreRecords(rows []any) bool {
	if len(rows) == 0 {
		return false
	}
	rec, ok := asMap(rows[0])
	if !ok {
		return false
	}
	return lookup(rec, "day") != nil
}

// lookup returns the first value present under any of the given keys,
// matching keys case-insensitively.
func lookup(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	for mk, v := range m {
		for _, k := range keys {
			if strings.EqualFold(mk, k) {
				return v
			}
		}
	}
	return nil
}

// asSlice widens the slice shapes mongo decoding and JSON decoding produce.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil:
		return nil, false
	case []any:
		return s, true
	case primitive.A:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	}
	return nil, false
}

// asMap widens the map shapes mongo decoding and JSON decoding produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	case primitive.M:
		return m, true
	case primitive.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			out[k.String()] = rv.MapIndex(k).Interface()
		}
		return out, true
	}
	return nil, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
