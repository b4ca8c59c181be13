package models

import "time"

// Representative is the delegate responsible for a route's daily execution.
type Representative struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Routes []Route `json:"routes,omitempty" gorm:"foreignKey:RepresentativeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}
