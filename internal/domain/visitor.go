package domain

import (
	"time"
)

// VisitRecord represents one logged page view stored in the visitors table
type VisitRecord struct {
	ID        int64     `json:"id" db:"id"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	UserAgent string    `json:"user_agent" db:"user_agent"`
	Country   *string   `json:"country" db:"country"`
	City      *string   `json:"city" db:"city"`
	Region    *string   `json:"region" db:"region"`
	Latitude  *float64  `json:"latitude" db:"latitude"`
	Longitude *float64  `json:"longitude" db:"longitude"`
	PageURL   string    `json:"page_url" db:"page_url"`
	VisitedAt time.Time `json:"visited_at" db:"visited_at"`
}

// VisitRequest is the body of POST /api/views
type VisitRequest struct {
	Page *string `json:"page"`
}

// Visit carries the request metadata the recorder needs.
type Visit struct {
	IPAddress string
	UserAgent string
	Page      string
}

// VisitResult describes what the recorder did with a visit.
type VisitResult struct {
	Skipped bool
	Record  *VisitRecord
}

// Geolocation is the subset of a geolocation lookup that is persisted.
type Geolocation struct {
	Country   *string
	City      *string
	Region    *string
	Latitude  *float64
	Longitude *float64
}

// DailyVisits is one entry of the 30-day histogram
type DailyVisits struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

// VisitorStats represents aggregate statistics derived from recent visit records
type VisitorStats struct {
	TotalVisits int            `json:"totalVisits"`
	UniqueIPs   int            `json:"uniqueIPs"`
	Countries   []string       `json:"countries"`
	Last30Days  []DailyVisits  `json:"last30Days"`
	Visitors    []*VisitRecord `json:"visitors"`
}
