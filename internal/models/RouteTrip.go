package models

import "time"

// RouteTrip is the legacy daily-trip table. TripTime is a free-text
// 12-hour label ("8:30 AM") rather than a timestamp; the importer and the
// delegate forms write this table.
type RouteTrip struct {
	ID            string        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RouteID       string        `json:"routeId" gorm:"type:uuid;not null;uniqueIndex:idx_route_trip_slot"`
	TripDate      time.Time     `json:"tripDate" gorm:"not null;uniqueIndex:idx_route_trip_slot;index"`
	Direction     TripDirection `json:"direction" gorm:"not null;uniqueIndex:idx_route_trip_slot"`
	TripTime      string        `json:"tripTime" gorm:"not null;uniqueIndex:idx_route_trip_slot"`
	StudentsCount int           `json:"studentsCount" gorm:"default:0"`
	Status        TripStatus    `json:"status" gorm:"default:PENDING"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Route *Route `json:"route,omitempty" gorm:"foreignKey:RouteID"`
}
