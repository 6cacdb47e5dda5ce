package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSlots is the fixed booking grid: twelve half-open hourly
// intervals from 09:00 to 21:00. Order matters for listing.
var TimeSlots = []string{
	"09:00 - 10:00",
	"10:00 - 11:00",
	"11:00 - 12:00",
	"12:00 - 13:00",
	"13:00 - 14:00",
	"14:00 - 15:00",
	"15:00 - 16:00",
	"16:00 - 17:00",
	"17:00 - 18:00",
	"18:00 - 19:00",
	"19:00 - 20:00",
	"20:00 - 21:00",
}

const slotSeparator = " - "

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotStart parses the start hour and minute out of a slot string.
// It is deliberately lenient about the right half: expiry is keyed off
// the start time only, and the sweeper must cope with rows whose slot
// never came from the catalog.
func SlotStart(slot string) (hour, minute int, err error) {
	if !strings.Contains(slot, slotSeparator) {
		return 0, 0, fmt.Errorf("time slot %q has no %q separator", slot, slotSeparator)
	}

	start := strings.SplitN(slot, slotSeparator, 2)[0]
	parts := strings.SplitN(start, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time slot %q has malformed start time", slot)
	}

	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("time slot %q: %w", slot, err)
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("time slot %q: %w", slot, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time slot %q has out-of-range start time", slot)
	}
	return hour, minute, nil
}
