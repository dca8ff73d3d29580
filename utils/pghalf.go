package utils

import (
	"math"
)

// pghalf is the 16 bit float layout used by PlatinumGames motion files:
// 1 sign bit, 6 exponent bits, 9 significand bits, exponent bias 47.
const (
	pghalfExpBits  = 6
	pghalfSigBits  = 9
	pghalfExpBias  = 47
	pghalfExpMask  = 1<<pghalfExpBits - 1
	pghalfSigMask  = 1<<pghalfSigBits - 1
	pghalfSigShift = 23 - pghalfSigBits
)

// renormalizes a pghalf denormal composed into float32 bits, 2^(127-47)
var pghalfDenormMagic = math.Float32frombits((2*127 - pghalfExpBias) << 23)

// PGHalfToFloat decodes a pghalf bit pattern into a float32.
// Every input is a valid pghalf, there is no error case.
func PGHalfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>pghalfSigBits) & pghalfExpMask
	sig := uint32(h) & pghalfSigMask

	switch {
	case exp == pghalfExpMask:
		// Inf / NaN
		return math.Float32frombits(sign | 0xff<<23 | sig<<pghalfSigShift)
	case exp != 0:
		return math.Float32frombits(sign | (exp+127-pghalfExpBias)<<23 | sig<<pghalfSigShift)
	case sig != 0:
		// denormal, significand renormalized by the magic multiplier
		return math.Float32frombits(sign|sig<<pghalfSigShift) * pghalfDenormMagic
	default:
		return math.Float32frombits(sign)
	}
}
