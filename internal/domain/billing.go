package domain

import "time"

// Billing is the billable breakdown of a tracked duration at an hourly rate.
type Billing struct {
	Hours  float64
	Amount float64
	Rate   float64
}

// Bill computes the billable amount for d at the given hourly rate.
func Bill(d time.Duration, rate float64) Billing {
	hours := d.Seconds() / 3600.0
	if hours < 0 {
		hours = 0
	}
	return Billing{Hours: hours, Amount: hours * rate, Rate: rate}
}
