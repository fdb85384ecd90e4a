// Package field holds the recorded solar-wind magnetic field samples and
// the playback machinery that advances through them.
package field

import "time"

// Sample is a single magnetic field record. Component fields are
// pointers so a missing measurement stays distinguishable from a
// measured zero (the upstream converter writes null for fill values).
type Sample struct {
	TimeMs float64  `json:"time" csv:"time"`
	Bx     *float64 `json:"bx" csv:"bx"`
	By     *float64 `json:"by" csv:"by"`
	Bz     *float64 `json:"bz" csv:"bz"`
	Bt     *float64 `json:"bt" csv:"bt"`
}

// value returns the measurement or 0 when absent.
func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// BxValue returns bx, or 0 when the measurement is absent.
func (s *Sample) BxValue() float64 { return value(s.Bx) }

// ByValue returns by, or 0 when the measurement is absent.
func (s *Sample) ByValue() float64 { return value(s.By) }

// BzValue returns bz, or 0 when the measurement is absent.
func (s *Sample) BzValue() float64 { return value(s.Bz) }

// BtValue returns bt, or 0 when the measurement is absent.
func (s *Sample) BtValue() float64 { return value(s.Bt) }

// HasTime reports whether the record carries a usable timestamp.
func (s *Sample) HasTime() bool {
	return s.TimeMs > 0
}

// Time interprets the record timestamp as epoch milliseconds in UTC.
func (s *Sample) Time() time.Time {
	return time.UnixMilli(int64(s.TimeMs)).UTC()
}
