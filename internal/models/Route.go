package models

import "time"

// Route is the recurring university/driver/bus assignment template from
// which daily trips are instantiated.
type Route struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UniversityID     string    `json:"universityId" gorm:"type:uuid;not null;index"`
	DriverID         string    `json:"driverId" gorm:"type:uuid;not null;index"`
	BusID            string    `json:"busId" gorm:"type:uuid;not null;index"`
	DistrictID       *string   `json:"districtId,omitempty" gorm:"type:uuid;index"`
	RepresentativeID *string   `json:"representativeId,omitempty" gorm:"type:uuid;index"`
	TotalGoTrips     int       `json:"totalGoTrips" gorm:"default:0"`
	TotalReturnTrips int       `json:"totalReturnTrips" gorm:"default:0"`
	IsActive         bool      `json:"isActive" gorm:"default:true"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	University     *University     `json:"university,omitempty" gorm:"foreignKey:UniversityID"`
	Driver         *Driver         `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Bus            *Bus            `json:"bus,omitempty" gorm:"foreignKey:BusID"`
	District       *District       `json:"district,omitempty" gorm:"foreignKey:DistrictID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Representative *Representative `json:"representative,omitempty" gorm:"foreignKey:RepresentativeID"`
	RouteTrips     []RouteTrip     `json:"routeTrips,omitempty" gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
