package models

import "time"

// BusDistrict joins buses to the districts they serve.
type BusDistrict struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusID      string    `json:"busId" gorm:"type:uuid;not null;uniqueIndex:idx_bus_district"`
	DistrictID string    `json:"districtId" gorm:"type:uuid;not null;uniqueIndex:idx_bus_district"`
	CreatedAt  time.Time `json:"createdAt"`

	District *District `json:"district,omitempty" gorm:"foreignKey:DistrictID"`
}
