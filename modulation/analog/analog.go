// Package analog enumerates the analog modulation types the signal path can
// demodulate and the bandwidth geometry of each around the tuned center
// frequency.
package analog

import (
	"fmt"
	"strings"

	"github.com/skywave-radio/radiocore/dspmath"
)

// Type identifies an analog modulation type.
type Type int

const (
	TypeUnknown Type = iota
	TypeAM
	TypeNFM
	TypeWFM
	TypeUSB
	TypeLSB
	TypeCW
)

func (t Type) String() string {
	switch t {
	case TypeAM:
		return "AM"
	case TypeNFM:
		return "NFM"
	case TypeWFM:
		return "WFM"
	case TypeUSB:
		return "USB"
	case TypeLSB:
		return "LSB"
	case TypeCW:
		return "CW"
	default:
		return "unknown"
	}
}

// ParseType maps a case-insensitive modulation name (as accepted on tool
// command lines) to its Type.
func ParseType(name string) (Type, error) {
	switch strings.ToUpper(name) {
	case "AM":
		return TypeAM, nil
	case "NFM", "FM":
		return TypeNFM, nil
	case "WFM":
		return TypeWFM, nil
	case "USB":
		return TypeUSB, nil
	case "LSB":
		return TypeLSB, nil
	case "CW":
		return TypeCW, nil
	}
	return TypeUnknown, fmt.Errorf("unknown modulation type %q", name)
}

// BandwidthIntervalAroundCenter returns the frequency interval, relative to
// the tuned center frequency, that a transmission of the given modulation
// type and bandwidth occupies. Double-sideband types straddle the center
// symmetrically; USB occupies only frequencies above it and LSB only below.
func BandwidthIntervalAroundCenter(t Type, bandwidth dspmath.Real) dspmath.Interval[dspmath.Real] {
	switch t {
	case TypeUSB:
		return dspmath.NewInterval(0, bandwidth)
	case TypeLSB:
		return dspmath.NewInterval(-bandwidth, 0)
	default:
		return dspmath.NewInterval(-bandwidth/2, bandwidth/2)
	}
}
