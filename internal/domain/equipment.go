package domain

import "time"

// EquipmentType is an open enumeration of reservable asset kinds.
type EquipmentType string

const (
	EquipmentTypeChromebook EquipmentType = "Chromebook"
	EquipmentTypeIPad       EquipmentType = "iPad"
)

// Equipment is a reservable asset in the catalog. Scheduling conflicts are
// resolved at the request layer; equipment itself is not time-scoped.
type Equipment struct {
	ID          string
	Type        EquipmentType
	Name        string
	IsAvailable bool
	CreatedAt   time.Time
}
