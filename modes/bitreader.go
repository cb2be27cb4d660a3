package modes

// BitReader extracts bit-exact fields from a fixed byte buffer. Bit 0 is
// the most significant bit of byte 0, matching the way every Mode S field
// layout in RTCA DO-260A/B is documented.
type BitReader struct {
	buf []byte
}

// NewBitReader wraps buf for bit-exact extraction. buf is not copied; the
// caller must not mutate it while the reader is in use.
func NewBitReader(buf []byte) BitReader {
	return BitReader{buf: buf}
}

// Len returns the number of addressable bits in the buffer.
func (r BitReader) Len() int {
	return len(r.buf) * 8
}

// Uint reads an unsigned integer of width bits (1-32) starting at the
// given bit offset.
func (r BitReader) Uint(offset, width int) (uint32, error) {
	if width < 1 || width > 32 {
		return 0, ErrBadFormat
	}
	if offset < 0 || offset+width > r.Len() {
		return 0, ErrFrameTooShort
	}

	var v uint32
	for i := 0; i < width; i++ {
		bitIndex := offset + i
		byteIndex := bitIndex / 8
		bitInByte := uint(7 - bitIndex%8)
		bit := (r.buf[byteIndex] >> bitInByte) & 1
		v = (v << 1) | uint32(bit)
	}
	return v, nil
}

// Int reads a two's-complement signed integer of width bits (1-32)
// starting at the given bit offset, sign-extended to int32.
func (r BitReader) Int(offset, width int) (int32, error) {
	u, err := r.Uint(offset, width)
	if err != nil {
		return 0, err
	}
	signBit := uint32(1) << (width - 1)
	if u&signBit != 0 {
		return int32(u) - int32(signBit<<1), nil
	}
	return int32(u), nil
}

// Bool reads a single bit as a boolean.
func (r BitReader) Bool(offset int) (bool, error) {
	v, err := r.Uint(offset, 1)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Bytes returns a copy of n bytes starting at byte offset byteOffset. Mode
// S fields that span whole bytes (ICAO24, ME payload) use this instead of
// re-deriving bit offsets.
func (r BitReader) Bytes(byteOffset, n int) ([]byte, error) {
	if byteOffset < 0 || n < 0 || byteOffset+n > len(r.buf) {
		return nil, ErrFrameTooShort
	}
	out := make([]byte, n)
	copy(out, r.buf[byteOffset:byteOffset+n])
	return out, nil
}
