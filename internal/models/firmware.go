package models

type BLEKind int

const (
	BLEVersion BLEKind = iota + 1
	BLEDebug
)

func (kind BLEKind) String() string {
	switch kind {
	case BLEVersion:
		return "version"
	case BLEDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// FirmwareBLE holds either a BLE version number (without the leading "v")
// or the marker of a debug build such as "Apparel_Debug".
type FirmwareBLE struct {
	Kind  BLEKind
	Value string
}

func NewBLEVersion(version string) FirmwareBLE {
	return FirmwareBLE{Kind: BLEVersion, Value: version}
}

func NewBLEDebug(marker string) FirmwareBLE {
	return FirmwareBLE{Kind: BLEDebug, Value: marker}
}

func (firmware FirmwareBLE) IsDebug() bool {
	return firmware.Kind == BLEDebug
}

// String renders the value the way it appears in reports. A zero value
// renders as an empty string.
func (firmware FirmwareBLE) String() string {
	switch firmware.Kind {
	case BLEVersion, BLEDebug:
		return firmware.Value
	default:
		return ""
	}
}
