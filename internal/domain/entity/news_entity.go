package entity

import "time"

// News is a published article. Image holds a public URL from the upload sink.
type News struct {
	ID          string
	Title       string
	Description string
	Author      string
	Category    string
	Image       string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
