package merge

import (
	"time"

	"github.com/monorkin/gplus-log-compiler/internal/models"
)

type Outcome int

const (
	Inserted Outcome = iota + 1
	Updated
	Kept
)

func (outcome Outcome) String() string {
	switch outcome {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Kept:
		return "kept"
	default:
		return "unknown"
	}
}

// Inventory maps MAC addresses to cores and remembers the order in which
// addresses were first seen.
type Inventory struct {
	cores map[string]*models.Core
	order []string
}

func NewInventory() *Inventory {
	return &Inventory{
		cores: make(map[string]*models.Core),
	}
}

// Merge folds an entry from a log last modified at lastSeen into the
// inventory. An existing core is only overwritten when lastSeen is strictly
// newer; on a tie the first record wins.
func (inventory *Inventory) Merge(entry Entry, lastSeen time.Time, source models.LogSource) Outcome {
	core, exists := inventory.cores[entry.MAC]

	if !exists {
		inventory.cores[entry.MAC] = &models.Core{
			Serial:        entry.Serial,
			MAC:           entry.MAC,
			LastSeen:      lastSeen,
			BLE:           entry.BLE,
			DSP:           entry.DSP,
			DSPBootloader: entry.DSPBootloader,
			Hardened:      source == models.SourceHardening,
		}
		inventory.order = append(inventory.order, entry.MAC)

		return Inserted
	}

	if source == models.SourceHardening {
		core.Hardened = true
	}

	if !lastSeen.After(core.LastSeen) {
		return Kept
	}

	core.LastSeen = lastSeen
	core.BLE = entry.BLE
	core.DSP = entry.DSP
	core.DSPBootloader = entry.DSPBootloader

	return Updated
}

func (inventory *Inventory) Get(mac string) (*models.Core, bool) {
	core, ok := inventory.cores[mac]
	return core, ok
}

func (inventory *Inventory) Len() int {
	return len(inventory.order)
}

// Cores returns the cores in the order their addresses were first merged.
func (inventory *Inventory) Cores() []*models.Core {
	cores := make([]*models.Core, 0, len(inventory.order))

	for _, mac := range inventory.order {
		cores = append(cores, inventory.cores[mac])
	}

	return cores
}
