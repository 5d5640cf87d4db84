package booking

import (
	"fmt"
	"time"
)

// Fixed UTC offsets per supported timezone label. The label is stored on the
// booking verbatim; the offset is only used to anchor the window. No DST
// arithmetic happens here.
var timezoneOffsets = map[string]int{
	"Africa/Lagos":   1 * 3600,
	"WAT":            1 * 3600,
	"UTC":            0,
	"Europe/London":  0,
	"Africa/Nairobi": 3 * 3600,
	"EST":            -5 * 3600,
}

const defaultTimezone = "Africa/Lagos"

// Window builds the booking start/end from a date ("2006-01-02"), a time
// ("15:04") and a timezone label, using the label's fixed offset.
func Window(date, clock, timezone string, durationMinutes int) (start, end time.Time, tz string, err error) {
	tz = timezone
	if tz == "" {
		tz = defaultTimezone
	}
	offset, ok := timezoneOffsets[tz]
	if !ok {
		offset = timezoneOffsets[defaultTimezone]
	}

	loc := time.FixedZone(tz, offset)
	start, err = time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid date or time: %w", err)
	}
	end = start.Add(time.Duration(durationMinutes) * time.Minute)
	return start, end, tz, nil
}
