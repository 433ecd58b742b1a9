// Package merge parses hub update logs and folds their entries into an
// inventory holding the freshest record per core.
package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/monorkin/gplus-log-compiler/internal/models"
)

const (
	FIELD_SEPARATOR = ", "
	MIN_FIELDS      = 5
	DEBUG_MARKER    = "Debug"
	VERSION_PREFIX  = "v"
	MAX_LINE_LENGTH = 64 * 1024
)

var (
	ErrTooFewFields     = errors.New("not enough fields")
	ErrMissingAddress   = errors.New("missing MAC address")
	ErrBadFirmwareField = errors.New("unrecognized firmware field")
	ErrLineTooLong      = errors.New("line too long")
)

// Entry is one parsed log line.
type Entry struct {
	Serial        string
	MAC           string
	BLE           models.FirmwareBLE
	DSP           string
	DSPBootloader string
}

// ParseLine parses "<serial>, <mac>, BLE v<ver>|BLE <marker>, DSP v<ver>, DSPBL v<ver>".
// Fields after the fifth are ignored.
func ParseLine(line string) (Entry, error) {
	fields := strings.Split(strings.TrimSpace(line), FIELD_SEPARATOR)
	if len(fields) < MIN_FIELDS {
		return Entry{}, fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(fields), MIN_FIELDS)
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if fields[1] == "" {
		return Entry{}, ErrMissingAddress
	}

	ble, err := parseBLE(fields[2])
	if err != nil {
		return Entry{}, err
	}

	dsp, err := parseVersioned(fields[3])
	if err != nil {
		return Entry{}, err
	}

	dspBootloader, err := parseVersioned(fields[4])
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Serial:        fields[0],
		MAC:           fields[1],
		BLE:           ble,
		DSP:           dsp,
		DSPBootloader: dspBootloader,
	}, nil
}

func parseBLE(field string) (models.FirmwareBLE, error) {
	_, token, found := strings.Cut(field, " ")
	if !found {
		return models.FirmwareBLE{}, fmt.Errorf("%w: %q", ErrBadFirmwareField, field)
	}

	if version, ok := versionOf(token); ok {
		return models.NewBLEVersion(version), nil
	}

	if strings.Contains(token, DEBUG_MARKER) {
		return models.NewBLEDebug(token), nil
	}

	return models.FirmwareBLE{}, fmt.Errorf("%w: %q", ErrBadFirmwareField, field)
}

func parseVersioned(field string) (string, error) {
	_, token, found := strings.Cut(field, " ")
	if !found {
		return "", fmt.Errorf("%w: %q", ErrBadFirmwareField, field)
	}

	version, ok := versionOf(token)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadFirmwareField, field)
	}

	return version, nil
}

func versionOf(token string) (string, bool) {
	version, ok := strings.CutPrefix(strings.TrimSpace(token), VERSION_PREFIX)
	if !ok || version == "" {
		return "", false
	}

	return version, true
}
