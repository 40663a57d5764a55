package bedstatus

import (
	"time"

	"github.com/geims/bedboard/internal/domain/ward"
)

// Status is the occupancy state of a bed. The string value is what gets
// persisted.
type Status string

const (
	StatusVacant       Status = "VACANT"
	StatusOccupied     Status = "OCCUPIED"
	StatusBooked       Status = "BOOKED"
	StatusShifting     Status = "SHIFTING"
	StatusVentilatorOn Status = "VENTILATOR ON"
	StatusCritical     Status = "CRITICAL"
	StatusToDischarge  Status = "TO DISCHARGE"
	StatusMaintenance  Status = "MAINTENANCE"
)

// allStatuses is the closed set in admin selection order.
var allStatuses = []Status{
	StatusVacant,
	StatusOccupied,
	StatusBooked,
	StatusShifting,
	StatusVentilatorOn,
	StatusCritical,
	StatusToDischarge,
	StatusMaintenance,
}

// statusAliases maps accepted input spellings onto the persisted value.
var statusAliases = map[string]Status{
	"VENTILATOR_ON": StatusVentilatorOn,
	"TO_DISCHARGE":  StatusToDischarge,
}

// AllStatuses returns the closed status set in selection order.
func AllStatuses() []Status {
	return append([]Status(nil), allStatuses...)
}

// ParseStatus maps raw input onto a member of the closed set. Matching is
// exact; underscore spellings of the two-word statuses are accepted.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if s.Valid() {
		return s, true
	}
	if alias, ok := statusAliases[raw]; ok {
		return alias, true
	}
	return "", false
}

// Valid reports whether s is a member of the closed set.
func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// BedRecord is the persisted status of one bed. It is always written whole.
type BedRecord struct {
	Status  string `json:"status"`
	Patient string `json:"patient"`
}

// Snapshot is a point-in-time read of every stored record.
type Snapshot map[ward.BedID]BedRecord

// ResolvedBedView is the display-ready state of one distinct bed.
type ResolvedBedView struct {
	BedID   ward.BedID `json:"bed_id"`
	Status  string     `json:"status"`
	Patient string     `json:"patient"`
	Known   bool       `json:"known"`
	Style   Style      `json:"style"`
}

// WardView is one ward of the board, beds in catalog order.
type WardView struct {
	Name string             `json:"name"`
	Beds []*ResolvedBedView `json:"beds"`
}

// Board is the full presentation payload.
type Board struct {
	Wards       []WardView     `json:"wards"`
	Summary     map[string]int `json:"summary"`
	Degraded    bool           `json:"degraded"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// UpdateRequest is the admin write payload.
type UpdateRequest struct {
	Status  string `json:"status"`
	Patient string `json:"patient"`
}
