package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlotsCatalog(t *testing.T) {
	assert.Len(t, TimeSlots, 12)
	assert.Equal(t, "09:00 - 10:00", TimeSlots[0])
	assert.Equal(t, "20:00 - 21:00", TimeSlots[11])

	for _, slot := range TimeSlots {
		assert.True(t, ValidTimeSlot(slot), slot)
	}
}

func TestValidTimeSlot_Rejects(t *testing.T) {
	for _, slot := range []string{
		"",
		"08:00 - 09:00",
		"21:00 - 22:00",
		"09:00-10:00",
		"9:00 - 10:00",
		"09:30 - 10:30",
	} {
		assert.False(t, ValidTimeSlot(slot), slot)
	}
}

func TestSlotStart(t *testing.T) {
	h, m, err := SlotStart("09:00 - 10:00")
	assert.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 0, m)

	h, m, err = SlotStart("20:00 - 21:00")
	assert.NoError(t, err)
	assert.Equal(t, 20, h)
	assert.Equal(t, 0, m)
}

func TestSlotStart_Malformed(t *testing.T) {
	for _, slot := range []string{
		"",
		"morning",
		"09:00",
		"25:00 - 26:00",
		"09:xx - 10:00",
	} {
		_, _, err := SlotStart(slot)
		assert.Error(t, err, slot)
	}
}

func TestValidFieldType(t *testing.T) {
	assert.True(t, ValidFieldType("basket"))
	assert.True(t, ValidFieldType("futsal"))
	assert.False(t, ValidFieldType("tennis"))
	assert.False(t, ValidFieldType(""))
}
