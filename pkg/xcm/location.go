package xcm

import (
	"errors"
	"fmt"
	"strings"
)

// MaxJunctions is the interior depth limit imposed by the protocol.
const MaxJunctions = 8

// ErrTooManyJunctions is returned when a decoded interior exceeds the
// protocol depth limit.
var ErrTooManyJunctions = errors.New("xcm: interior exceeds 8 junctions")

// Junctions is an ordered interior path, at most MaxJunctions deep.
type Junctions []Junction

// Location addresses a point in the consensus universe relative to the
// local chain: climb Parents levels, then descend through Interior.
type Location struct {
	Parents  uint8     `json:"parents"`
	Interior Junctions `json:"interior"`
}

func NewLocation(parents uint8, interior ...Junction) Location {
	return Location{Parents: parents, Interior: interior}
}

// SiblingLocation is the canonical location of a sibling parachain's
// native asset as seen from this chain.
func SiblingLocation(paraID uint32) Location {
	return NewLocation(1, ParachainJunction(paraID))
}

// Validate checks the interior depth limit and that every junction is one
// of the supported kinds.
func (l Location) Validate() error {
	if len(l.Interior) > MaxJunctions {
		return ErrTooManyJunctions
	}
	for _, j := range l.Interior {
		if !j.Known() {
			return fmt.Errorf("xcm: unsupported junction in %s", l)
		}
	}
	return nil
}

func (l Location) String() string {
	if len(l.Interior) == 0 {
		return fmt.Sprintf("%d/Here", l.Parents)
	}
	parts := make([]string, len(l.Interior))
	for i, j := range l.Interior {
		parts[i] = j.String()
	}
	return fmt.Sprintf("%d/%s", l.Parents, strings.Join(parts, "/"))
}

// Key returns a canonical map key for the location. Two locations with the
// same rendering address the same point, which is all the asset registries
// need.
func (l Location) Key() string {
	return l.String()
}
