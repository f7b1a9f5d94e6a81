package ax25

import "github.com/skywave-radio/radiocore/datalink/ax25/crc"

// Encode serializes a Message into a complete frame body, including the
// trailing 2-byte FCS (low byte first, matching the on-the-wire order
// Decode expects).
func Encode(msg Message) []byte {
	var payload []byte

	payload = append(payload, encodeAddress(msg.Destination, false)...)

	lastRepeaterIndex := len(msg.Repeaters) - 1
	payload = append(payload, encodeAddress(msg.Source, lastRepeaterIndex < 0)...)

	for i, rep := range msg.Repeaters {
		payload = append(payload, encodeAddress(rep, i == lastRepeaterIndex)...)
	}

	payload = append(payload, msg.Control)
	if FrameControlUsesPID(msg.Control) {
		payload = append(payload, msg.PID)
	}
	if FrameControlUsesInfo(msg.Control) {
		payload = append(payload, msg.Information...)
	}

	fcs := crc.Checksum(payload)
	payload = append(payload, byte(fcs), byte(fcs>>8))

	return payload
}

// encodeAddress serializes one address field, shifting each callsign
// character left by one bit and packing the SSID, repeated flag and
// extension bit into the trailing byte. last marks whether this is the
// final address field in the frame (sets the extension bit).
func encodeAddress(addr Address, last bool) []byte {
	out := make([]byte, 7)

	callsign := addr.Callsign
	for len(callsign) < 6 {
		callsign += " "
	}
	for i := 0; i < 6; i++ {
		out[i] = callsign[i] << 1
	}

	ssidByte := byte(0x60) | byte(addr.SSID&0xf)<<1
	if addr.HasBeenRepeated {
		ssidByte |= 0x80
	}
	if last {
		ssidByte |= 0x01
	}
	out[6] = ssidByte

	return out
}
