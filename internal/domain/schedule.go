package domain

// ScheduleItemKind distinguishes the entries of a day plan.
type ScheduleItemKind string

// Schedule item kinds.
const (
	ScheduleTransportation ScheduleItemKind = "transportation"
	ScheduleActivity       ScheduleItemKind = "activity"
)

// Fixed schedule entries for generated itineraries.
const (
	ArrivalTime    = "09:00"
	ArrivalName    = "Arrival and Check-in"
	DepartureTime  = "17:00"
	DepartureName  = "Check-out and Departure"
	FirstSlotHour  = 10
	SlotGapHours   = 2
	MaxSlotsPerDay = MaxActivitiesPerItinerary
)

// ScheduleItem is one timed entry in a day plan. Time is "HH:MM" local to
// the trip location.
type ScheduleItem struct {
	Time       string           `json:"time"`
	Kind       ScheduleItemKind `json:"kind"`
	Name       string           `json:"name"`
	ActivityID string           `json:"activity_id,omitempty"`
	Location   string           `json:"location,omitempty"`
}

// DayPlan lists the entries of one trip day, in time order. Day counts from 1.
type DayPlan struct {
	Day   int            `json:"day"`
	Items []ScheduleItem `json:"items"`
}
