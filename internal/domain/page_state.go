package domain

import "time"

// PageState is the persisted form of one visitor's page.
// Ratings are indexed in catalog order.
type PageState struct {
	SessionID string
	ActiveTab Tab
	FunFact   string
	Ratings   []int
	UpdatedAt time.Time
}
