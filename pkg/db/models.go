package db

const (
	BlackoutKindDuty   = "duty"
	BlackoutKindOffDay = "off_day"
)

// Fellow represents a stored roster member
type Fellow struct {
	ID   string
	Name string
	Tier string
}

// Blackout represents a stored unavailability record for a fellow.
// Dates use YYYY-MM-DD; End, StartTime and RRule are empty when unset.
type Blackout struct {
	ID        string
	Fellow    string
	Kind      string
	Start     string
	End       string
	StartTime string
	RRule     string
}
