package engine

import "math/big"

// ItemToInt interprets a stack item as a signed, sign-magnitude,
// little-endian integer. An empty item is zero. The high bit of the last
// byte is the sign bit; the remaining bits of that byte are magnitude.
func ItemToInt(item []byte) *big.Int {
	if len(item) == 0 {
		return new(big.Int)
	}

	magnitude := make([]byte, len(item))
	copy(magnitude, item)

	negative := magnitude[len(magnitude)-1]&0x80 != 0
	magnitude[len(magnitude)-1] &= 0x7f

	result := leBytesToBigInt(magnitude)
	if negative {
		result.Neg(result)
	}
	return result
}

// IntToItem encodes value as a variable-length sign-magnitude
// little-endian stack item, the inverse of ItemToInt.
func IntToItem(value *big.Int) []byte {
	if value.Sign() == 0 {
		return nil
	}

	negative := value.Sign() < 0
	abs := new(big.Int).Abs(value)
	item := bigIntToLEBytes(abs)

	if item[len(item)-1]&0x80 != 0 {
		if negative {
			item = append(item, 0x80)
		} else {
			item = append(item, 0x00)
		}
	} else if negative {
		item[len(item)-1] |= 0x80
	}
	return item
}

// IntToItemSize encodes value the same way as IntToItem but pads the
// little-endian magnitude out to exactly size bytes (OP_NUM2BIN
// semantics). ok is false if value's minimal encoding does not fit in
// size bytes, including the extra sign byte a magnitude with its top bit
// already set requires.
func IntToItemSize(value *big.Int, size int) ([]byte, bool) {
	if size == 0 {
		return nil, value.Sign() == 0
	}

	negative := value.Sign() < 0
	abs := new(big.Int).Abs(value)
	magnitude := bigIntToLEBytes(abs)
	if value.Sign() == 0 {
		magnitude = nil
	}

	// If the magnitude's own top bit is already set, it cannot also carry
	// the sign bit: an extra byte is needed to hold the sign, exactly as
	// IntToItem appends one in that situation.
	signByteNeeded := 0
	if len(magnitude) > 0 && magnitude[len(magnitude)-1]&0x80 != 0 {
		signByteNeeded = 1
	}
	if len(magnitude)+signByteNeeded > size {
		return nil, false
	}

	out := make([]byte, size)
	copy(out, magnitude)
	if negative {
		out[size-1] |= 0x80
	}
	return out, true
}

// IsMinimallyEncoded reports whether item is the shortest possible
// sign-magnitude encoding of the number it represents: no redundant
// trailing zero byte, except when that byte's sign bit is needed to
// disambiguate the top data bit.
func IsMinimallyEncoded(item []byte) bool {
	if len(item) == 0 {
		return true
	}
	// The last byte, stripped of its sign bit, must be nonzero unless
	// it's needed so the second-to-last byte's high bit isn't mistaken
	// for the sign.
	if item[len(item)-1]&0x7f == 0 {
		if len(item) == 1 {
			return false
		}
		if item[len(item)-2]&0x80 == 0 {
			return false
		}
	}
	return true
}

// MinimalEncoding returns the shortest item representing the same integer
// value as item (OP_BIN2NUM semantics). Stripping only literal trailing
// zero bytes misses the case where the redundant byte is a bare sign byte
// (e.g. [0x80], or [0x01, 0x80]), so this decodes and re-encodes the value
// instead, which always agrees with IsMinimallyEncoded.
func MinimalEncoding(item []byte) []byte {
	if len(item) == 0 {
		return nil
	}
	return IntToItem(ItemToInt(item))
}

// MinimalPushOpcode returns the opcode that minimally pushes item.
func MinimalPushOpcode(item []byte) Opcode {
	n := len(item)
	switch {
	case n == 0:
		return OP_0
	case n == 1 && item[0] >= 1 && item[0] <= 16:
		return Opcode(int(OP_1) + int(item[0]) - 1)
	case n == 1 && item[0] == 0x81:
		return OP_1NEGATE
	case n < int(OP_PUSHDATA1):
		return Opcode(n)
	case n <= 0xff:
		return OP_PUSHDATA1
	case n <= 0xffff:
		return OP_PUSHDATA2
	default:
		return OP_PUSHDATA4
	}
}

// CastToBool implements Bitcoin's definition of stack-item truthiness: an
// item is false if and only if it is all zero bytes, except that the last
// byte may be 0x80 (negative zero) and still count as false.
func CastToBool(item []byte) bool {
	for i, b := range item {
		if b == 0 {
			continue
		}
		if i == len(item)-1 && b == 0x80 {
			return false
		}
		return true
	}
	return false
}

func leBytesToBigInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

func bigFromInt(n int) *big.Int {
	return big.NewInt(int64(n))
}

func bigIntToLEBytes(v *big.Int) []byte {
	be := v.Bytes()
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	return le
}
