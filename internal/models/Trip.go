package models

import "time"

// Trip is the current daily-trip table. Unlike RouteTrip it stores the
// scheduled departure as a real timestamp and tracks actual times.
type Trip struct {
	ID                  string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusID               string        `json:"busId" gorm:"type:uuid;not null;index"`
	RouteID             *string       `json:"routeId,omitempty" gorm:"type:uuid;index"`
	TripDate            time.Time     `json:"tripDate" gorm:"not null;index"`
	Direction           TripDirection `json:"direction" gorm:"not null"`
	ScheduledTime       time.Time     `json:"scheduledTime" gorm:"not null"`
	PassengersCount     int           `json:"passengersCount" gorm:"default:0"`
	Status              TripStatus    `json:"status" gorm:"default:PENDING"`
	ActualDepartureTime *time.Time    `json:"actualDepartureTime,omitempty"`
	ActualArrivalTime   *time.Time    `json:"actualArrivalTime,omitempty"`
	Notes               *string       `json:"notes,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`

	Bus   *Bus   `json:"bus,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Route *Route `json:"route,omitempty" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
