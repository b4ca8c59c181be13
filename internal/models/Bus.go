package models

import "time"

// Bus is a physical vehicle identified by its fleet number.
type Bus struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusNumber string    `json:"busNumber" gorm:"uniqueIndex;not null"`
	Capacity  int       `json:"capacity" gorm:"default:50"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Districts []BusDistrict `json:"districts,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Routes    []Route       `json:"routes,omitempty" gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
