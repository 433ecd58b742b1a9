package models

import (
	"time"
)

type LogSource string

const (
	SourceShipment  LogSource = "shipment"
	SourceHardening LogSource = "hardening"
)

// Core is the merged state of a single core, keyed by its MAC address.
// LastSeen is the modification time of the log the firmware fields came from.
type Core struct {
	Serial        string
	MAC           string
	LastSeen      time.Time
	BLE           FirmwareBLE
	DSP           string
	DSPBootloader string
	Hardened      bool
}
