package entity

import "time"

// Service is an offering listed in the catalog.
type Service struct {
	ID                string
	Name              string
	Description       string
	Logo              string
	CommunicationRate float64
	Date              time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
