package modes

// Unit is the vertical unit an altitude/AC field was encoded in.
type Unit uint8

const (
	UnitFeet Unit = iota
	UnitMeters
)

// decodeAC13 decodes the 13-bit AC altitude field at the fixed byte
// offsets shared by DF0, DF4, DF16 and DF20 (msg[2], msg[3]), following
// the teacher's decodeAC13Field. Returns the altitude in feet and the
// unit; ok is false when the field cannot be decoded (M=1, or Q=0 which
// this decoder does not attempt to resolve via the Gillham table).
func decodeAC13(msg []byte) (altitude int32, unit Unit, ok bool) {
	if len(msg) < 4 {
		return 0, UnitFeet, false
	}
	mBit := msg[3] & (1 << 6)
	qBit := msg[3] & (1 << 4)

	if mBit != 0 {
		return 0, UnitMeters, false
	}
	if qBit == 0 {
		return 0, UnitFeet, false
	}

	n := ((uint32(msg[2]) & 31) << 6) |
		((uint32(msg[3]) & 0x80) >> 2) |
		((uint32(msg[3]) & 0x20) >> 1) |
		(uint32(msg[3]) & 15)
	return int32(n)*25 - 1000, UnitFeet, true
}

// decodeAC12 decodes the 12-bit AC altitude field used by ADS-B position
// messages (msg[5], msg[6]), following the teacher's decodeAC12Field.
func decodeAC12(msg []byte) (altitude int32, ok bool) {
	if len(msg) < 7 {
		return 0, false
	}
	qBit := msg[5] & 1
	if qBit == 0 {
		return 0, false
	}
	n := (uint32(msg[5]>>1) << 4) | uint32((msg[6]&0xF0)>>4)
	return int32(n)*25 - 1000, true
}

// decodeGillhamIdentity decodes the 13-bit interleaved (Gillham) identity
// field shared by DF5/DF21 at msg[2], msg[3], following the teacher's
// inline decode in DecodeModesMessage. See
// https://en.wikipedia.org/wiki/Gillham_code.
func decodeGillhamIdentity(msg []byte) uint16 {
	a := ((msg[3] & 0x80) >> 5) |
		((msg[2] & 0x02) >> 0) |
		((msg[2] & 0x08) >> 3)
	b := ((msg[3] & 0x02) << 1) |
		((msg[3] & 0x08) >> 2) |
		((msg[3] & 0x20) >> 5)
	c := ((msg[2] & 0x01) << 2) |
		((msg[2] & 0x04) >> 1) |
		((msg[2] & 0x10) >> 4)
	d := ((msg[3] & 0x01) << 2) |
		((msg[3] & 0x04) >> 1) |
		((msg[3] & 0x10) >> 4)
	return uint16(a)*1000 + uint16(b)*100 + uint16(c)*10 + uint16(d)
}
