package scheduling

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"servio/models"
)

// ParseWeeklyAvailability validates a raw schedule payload and normalizes it: day names and
// legacy day numbers collapse to models.DayOfWeek, and windows are sorted by start.
func ParseWeeklyAvailability(in models.WeeklyAvailabilityInput) (*models.WeeklyAvailability, error) {
	buffer, err := parseBuffer(in.BufferTimeMinutes)
	if err != nil {
		return nil, err
	}

	out := &models.WeeklyAvailability{
		BufferTimeMinutes: buffer,
		Days:              make([]models.DaySchedule, 0, len(in.Days)),
	}
	seen := make(map[models.DayOfWeek]int, len(in.Days))

	for i, d := range in.Days {
		prefix := fmt.Sprintf("days[%d]", i)

		var day models.DayOfWeek
		if len(d.DayOfWeek) == 0 {
			return nil, models.NewValidationError(prefix+".dayOfWeek", "is required")
		}
		if err := json.Unmarshal(d.DayOfWeek, &day); err != nil {
			return nil, models.NewValidationError(prefix+".dayOfWeek", err.Error())
		}
		if first, dup := seen[day]; dup {
			return nil, models.NewValidationError(prefix+".dayOfWeek",
				fmt.Sprintf("%s already defined at days[%d]", day, first))
		}
		seen[day] = i

		available, err := parseBool(d.IsAvailable)
		if err != nil {
			return nil, models.NewValidationError(prefix+".isAvailable", err.Error())
		}

		if !available && len(d.Windows) > 0 {
			return nil, models.NewValidationError(prefix+".windows", "must be empty when isAvailable is false")
		}
		if available && len(d.Windows) == 0 {
			return nil, models.NewValidationError(prefix+".windows", "must not be empty when isAvailable is true")
		}

		windows := make([]models.TimeRange, 0, len(d.Windows))
		for j, w := range d.Windows {
			field := fmt.Sprintf("%s.windows[%d]", prefix, j)
			start, err := models.ParseTimeOfDay(w.Start)
			if err != nil {
				return nil, models.NewValidationError(field+".start", err.Error())
			}
			end, err := models.ParseTimeOfDay(w.End)
			if err != nil {
				return nil, models.NewValidationError(field+".end", err.Error())
			}
			if start >= end {
				return nil, models.NewValidationError(field, fmt.Sprintf("start %s must be before end %s", start, end))
			}
			windows = append(windows, models.TimeRange{Start: start, End: end})
		}

		sort.SliceStable(windows, func(a, b int) bool { return windows[a].Start < windows[b].Start })
		for j := 1; j < len(windows); j++ {
			if windows[j].Start < windows[j-1].End {
				return nil, models.NewValidationError(prefix+".windows",
					fmt.Sprintf("window %s-%s overlaps %s-%s", windows[j].Start, windows[j].End, windows[j-1].Start, windows[j-1].End))
			}
		}

		out.Days = append(out.Days, models.DaySchedule{
			DayOfWeek:   day,
			IsAvailable: available,
			Windows:     windows,
		})
	}

	sort.SliceStable(out.Days, func(a, b int) bool { return out.Days[a].DayOfWeek < out.Days[b].DayOfWeek })
	return out, nil
}

func parseBuffer(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, models.NewValidationError("bufferTimeMinutes", "is required")
	}
	if raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return 0, models.NewValidationError("bufferTimeMinutes", "must be an integer")
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, models.NewValidationError("bufferTimeMinutes", "must be an integer")
	}
	v, err := n.Int64()
	if err != nil {
		return 0, models.NewValidationError("bufferTimeMinutes", "must be an integer")
	}
	if v < 0 {
		return 0, models.NewValidationError("bufferTimeMinutes", "must not be negative")
	}
	return int(v), nil
}

func parseBool(raw json.RawMessage) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "":
		return false, fmt.Errorf("is required")
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("must be a boolean")
}
