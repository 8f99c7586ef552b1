package domain

import (
	"slices"
	"time"
)

// Targeting describes where and when a candidate may serve. An empty slice
// means the dimension is untargeted and matches everything.
type Targeting struct {
	Slots       []string `json:"slots"`
	DeviceTypes []string `json:"device_types"`
	Countries   []string `json:"countries"`
	Regions     []string `json:"regions"`

	// Hours (0-23) and Days (0=Sunday) form the schedule window. The schedule
	// affects scoring only, never eligibility.
	Hours []int `json:"hours"`
	Days  []int `json:"days"`
}

// Matches reports whether the slot and viewer context satisfy the targeting
// predicate. Regions deliberately do not gate eligibility; a region mismatch
// only degrades the relevance score.
func (t Targeting) Matches(slotID string, slot SlotContext) bool {
	if len(t.Slots) > 0 && !slices.Contains(t.Slots, slotID) {
		return false
	}
	if len(t.DeviceTypes) > 0 && !slices.Contains(t.DeviceTypes, slot.DeviceType) {
		return false
	}
	if len(t.Countries) > 0 && !slices.Contains(t.Countries, slot.Country) {
		return false
	}
	return true
}

// InSchedule reports whether now falls inside the candidate's schedule
// window. No schedule set means always in schedule.
func (t Targeting) InSchedule(now time.Time) bool {
	now = now.UTC()
	if len(t.Hours) > 0 && !slices.Contains(t.Hours, now.Hour()) {
		return false
	}
	if len(t.Days) > 0 && !slices.Contains(t.Days, int(now.Weekday())) {
		return false
	}
	return true
}
