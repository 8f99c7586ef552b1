package domain

import "time"

// SlotContext describes a single slot-fill request: the viewer's device and
// geography plus the request time. The HTTP layer constructs this struct from
// request data and passes it into the engine. Now doubles as the auction
// clock so that identical inputs always produce identical results.
type SlotContext struct {
	DeviceType string
	Country    string
	Region     string
	Now        time.Time
}
