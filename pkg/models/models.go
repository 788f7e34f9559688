package models

import (
	"time"
)

type Venue struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Location    string    `gorm:"size:200;not null" json:"location"`
	Capacity    int       `gorm:"not null;check:capacity > 0" json:"capacity"`
	ImageKey    string    `gorm:"size:500" json:"imageKey"`
	IsAvailable bool      `json:"isAvailable"`
	EventType   string    `json:"eventType"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Bookings []Booking `gorm:"foreignKey:VenueID" json:"-"`
}

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	ImageKey    string    `gorm:"size:500" json:"imageKey"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Bookings []Booking `gorm:"foreignKey:EventID" json:"-"`
}

type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"size:100;not null" json:"customerName"`
	ContactEmail string    `json:"contactEmail"`
	BookingDate  time.Time `gorm:"not null" json:"bookingDate"`
	IsBooked     bool      `json:"isBooked"`
	VenueID      uint      `gorm:"not null" json:"venueId"`
	EventID      uint      `gorm:"not null" json:"eventId"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	Venue Venue `gorm:"foreignKey:VenueID" json:"-"`
	Event Event `gorm:"foreignKey:EventID" json:"-"`
}

// EventType is a seed-only lookup offering a controlled vocabulary for
// venue event types. Venue.EventType itself stays free text.
type EventType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null;uniqueIndex" json:"name"`
}
