package clock

import "time"

// inferMeridiem resolves the half-day for an hour given without an am/pm
// marker: pick the meridiem whose absolute time is the next occurrence of
// hh:mm from now. Hour 0 and hours from 12 up are already unambiguous and
// report as 24-hour notation
func inferMeridiem(now time.Time, hh, mm int) Meridiem {
	if hh == 0 || hh >= 12 {
		return Hours24
	}
	nowMin := now.Hour()*60 + now.Minute()
	amMin := hh*60 + mm
	pmMin := (hh+12)*60 + mm
	switch {
	case amMin > nowMin:
		return AM
	case pmMin > nowMin:
		return PM
	default:
		// both halves have passed today; the next occurrence is tomorrow morning
		return AM
	}
}
