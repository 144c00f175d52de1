package mesh

import gomath "math"

// DequantizeU16 maps a 16-bit fixed-point value onto [min, min+rng]
// linearly: 0 decodes to min, 65535 to min+rng.
func DequantizeU16(raw uint16, min, rng float32) float32 {
	return min + float32(raw)/65535.0*rng
}

// DequantizeUnit16 maps a 16-bit fixed-point value onto [0, 1]. Used for
// quantized texture coordinates.
func DequantizeUnit16(raw uint16) float32 {
	return float32(raw) / 65535.0
}

// DequantizeU8 maps an 8-bit quantized axis onto the symmetric range
// [-1, 1]: 0 decodes to -1, 255 to +1. ZipPos variants store positions
// this way regardless of any min/range header fields.
func DequantizeU8(raw uint8) float32 {
	return float32(raw)/255.0*2 - 1
}

// halfToFloat expands an IEEE 754 half-precision value to float32.
// fmt_mesh UV channels store coordinates as halves.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h) & 0x3FF

	var bits uint32
	switch {
	case exp == 0:
		if frac == 0 {
			bits = sign << 31 // signed zero
		} else {
			// Subnormal half: renormalize into float32 range.
			e := uint32(127 - 15 + 1)
			for frac&0x400 == 0 {
				frac <<= 1
				e--
			}
			frac &^= 0x400
			bits = sign<<31 | e<<23 | frac<<13
		}
	case exp == 0x1F:
		bits = sign<<31 | 0xFF<<23 | frac<<13 // Inf / NaN
	default:
		bits = sign<<31 | (exp-15+127)<<23 | frac<<13
	}
	return gomath.Float32frombits(bits)
}
