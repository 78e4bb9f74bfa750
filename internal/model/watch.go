package model

import "time"

// WatchedPavilion is one entry of the persisted watch list.
type WatchedPavilion struct {
	Code      string    `gorm:"primaryKey;size:32"`
	CreatedAt time.Time `gorm:"not null"`
}

// TicketProfile stores a subscriber's personal ticket IDs, used when
// building personalized booking links. IDs are stored comma-joined; they
// are opaque strings that never contain commas upstream.
type TicketProfile struct {
	SubscriberID string `gorm:"primaryKey;size:64"`
	TicketIDs    string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
