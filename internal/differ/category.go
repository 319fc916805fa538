package differ

import (
	"fmt"
)

// Category is a migration category attached to a SignatureDiff.
type Category string

const (
	AllocatorAdded       Category = "allocator_added"
	AllocatorRemoved     Category = "allocator_removed"
	IOInterfaceChanged   Category = "io_interface_changed"
	ErrorHandlingChanged Category = "error_handling_changed"
	APIStructureChanged  Category = "api_structure_changed"
	NoChange             Category = "no_change"
)

// Categories lists every category in priority order.
func Categories() []Category {
	return []Category{
		AllocatorAdded,
		AllocatorRemoved,
		IOInterfaceChanged,
		ErrorHandlingChanged,
		APIStructureChanged,
		NoChange,
	}
}

// ParseCategory accepts the snake_case name of a category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type Status uint8

const (
	StatusUnchanged Status = iota
	StatusChanged
	StatusAdded
	StatusRemoved
)

var statusNames = [...]string{
	StatusUnchanged: "unchanged",
	StatusChanged:   "changed",
	StatusAdded:     "added",
	StatusRemoved:   "removed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", s)
}

type Confidence uint8

const (
	High Confidence = iota
	Low
)

func (c Confidence) String() string {
	if c == Low {
		return "low"
	}
	return "high"
}
