package domain

import "time"

// DailyStat is one day's confirmed donation volume.
type DailyStat struct {
	Day       time.Time
	Donations int
	Amount    int64
}

// StatsSummary aggregates confirmed donations for reporting.
type StatsSummary struct {
	TotalDonations int
	TotalAmount    int64
	Daily          []DailyStat
}
