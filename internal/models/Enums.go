package models

// TripDirection distinguishes outbound and inbound runs.
type TripDirection string

const (
	DirectionGo     TripDirection = "GO"
	DirectionReturn TripDirection = "RETURN"
)

// TripStatus is the lifecycle of a single day's run, as recorded by delegates.
type TripStatus string

const (
	StatusPending   TripStatus = "PENDING"
	StatusDeparted  TripStatus = "DEPARTED"
	StatusArrived   TripStatus = "ARRIVED"
	StatusDelayed   TripStatus = "DELAYED"
	StatusCancelled TripStatus = "CANCELLED"
)

// AllStatuses lists every status in a stable order, used when zero-filling
// status count maps.
var AllStatuses = []TripStatus{
	StatusPending,
	StatusDeparted,
	StatusArrived,
	StatusDelayed,
	StatusCancelled,
}
