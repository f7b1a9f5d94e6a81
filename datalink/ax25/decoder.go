package ax25

import (
	"github.com/skywave-radio/radiocore/datalink/ax25/crc"
	"github.com/skywave-radio/radiocore/result"
)

// Decode parses one complete de-stuffed HDLC frame body (as produced by
// hdlc.Decoder between a frame-start and frame-end event) into an AX.25
// Message, verifying its trailing 2-byte FCS.
//
// The FCS itself must not be included in the CRC computation, so the frame
// is checksummed up to len(frame)-2 and the result compared against the
// last two bytes read little-endian, matching the on-the-wire encoding.
func Decode(frame []byte) result.Result[Message] {
	if len(frame) < 2+1+7+7 {
		return result.Fail[Message](result.KindResourceExhausted, "frame too short")
	}

	payload := frame[:len(frame)-2]
	wantFCS := uint16(frame[len(frame)-2]) | uint16(frame[len(frame)-1])<<8
	gotFCS := crc.Checksum(payload)

	msg, ok := decodeFields(payload)
	if !ok {
		return result.Fail[Message](result.KindDecodeError, "malformed address/control field")
	}

	if gotFCS != wantFCS {
		return result.FailWithPartial(result.KindChecksumMismatch, "FCS mismatch", msg)
	}

	return result.OK(msg)
}

func decodeFields(payload []byte) (Message, bool) {
	var msg Message
	offset := 0

	dest, extended, ok := decodeAddress(payload, offset)
	if !ok {
		return msg, false
	}
	msg.Destination = dest
	offset += 7

	if extended {
		return msg, false
	}

	src, extended, ok := decodeAddress(payload, offset)
	if !ok {
		return msg, false
	}
	msg.Source = src
	offset += 7

	for !extended {
		rep, ext, ok := decodeAddress(payload, offset)
		if !ok {
			return msg, false
		}
		msg.Repeaters = append(msg.Repeaters, rep)
		offset += 7
		extended = ext
	}

	if offset >= len(payload) {
		return msg, false
	}
	msg.Control = payload[offset]
	offset++

	if FrameControlUsesPID(msg.Control) {
		if offset >= len(payload) {
			return msg, false
		}
		msg.PID = payload[offset]
		offset++
	}

	if FrameControlUsesInfo(msg.Control) {
		msg.Information = append([]byte(nil), payload[offset:]...)
	}

	return msg, true
}

// decodeAddress decodes one 7-byte AX.25 address field starting at offset:
// 6 callsign bytes (each ASCII shifted left 1 bit) followed by an SSID
// byte. Bit 0 of the SSID byte is the address-extension bit (1 means this
// was the last address field); bit 7 is the has-been-repeated flag, which
// only repeater addresses carry meaning for.
func decodeAddress(payload []byte, offset int) (addr Address, extensionBit bool, ok bool) {
	if offset+7 > len(payload) {
		return addr, false, false
	}

	callsign := make([]byte, 0, 6)
	for i := 0; i < 6; i++ {
		c := payload[offset+i] >> 1
		if c != ' ' {
			callsign = append(callsign, c)
		}
	}

	ssidByte := payload[offset+6]
	addr = Address{
		Callsign:        string(callsign),
		SSID:            int((ssidByte >> 1) & 0xf),
		HasBeenRepeated: ssidByte&0x80 != 0,
	}

	extensionBit = ssidByte&0x01 != 0
	return addr, extensionBit, true
}
