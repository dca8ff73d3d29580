package utils_test

import (
	"math"
	"testing"

	"github.com/nier-tools/mot_browser/utils"
)

func TestPGHalfZeroes(t *testing.T) {
	if v := utils.PGHalfToFloat(0x0000); v != 0.0 || math.Signbit(float64(v)) {
		t.Errorf("0x0000 -> %v, expected +0", v)
	}
	if v := utils.PGHalfToFloat(0x8000); v != 0.0 || !math.Signbit(float64(v)) {
		t.Errorf("0x8000 -> %v, expected -0", v)
	}
}

func TestPGHalfNormals(t *testing.T) {
	for _, c := range []struct {
		in  uint16
		out float32
	}{
		{47 << 9, 1.0},                 // exponent field == bias, empty significand
		{48 << 9, 2.0},                 //
		{47<<9 | 0x100, 1.5},           // significand msb
		{47<<9 | 1, 1.0 + 1.0/512.0},   // significand lsb
		{0x8000 | 47<<9, -1.0},         //
		{46<<9 | 0x180, 0.875},         //
		{1 << 9, float32(math.Ldexp(1, 1-47))}, // smallest normal
	} {
		if v := utils.PGHalfToFloat(c.in); v != c.out {
			t.Errorf("0x%.4x -> %v, expected %v", c.in, v, c.out)
		}
	}
}

func TestPGHalfSpecials(t *testing.T) {
	if v := utils.PGHalfToFloat(0x3f << 9); !math.IsInf(float64(v), 1) {
		t.Errorf("max exponent, zero significand -> %v, expected +Inf", v)
	}
	if v := utils.PGHalfToFloat(0x8000 | 0x3f<<9); !math.IsInf(float64(v), -1) {
		t.Errorf("max exponent, zero significand, sign -> %v, expected -Inf", v)
	}
	if v := utils.PGHalfToFloat(0x3f<<9 | 1); !math.IsNaN(float64(v)) {
		t.Errorf("max exponent, nonzero significand -> %v, expected NaN", v)
	}
}

func TestPGHalfDenormals(t *testing.T) {
	// value = significand * 2^(1 - 47 - 9)
	for _, c := range []struct {
		in  uint16
		out float64
	}{
		{0x0001, math.Ldexp(1, -55)},
		{0x01ff, math.Ldexp(511, -55)},
		{0x8001, -math.Ldexp(1, -55)},
	} {
		v := float64(utils.PGHalfToFloat(c.in))
		if math.Abs(v-c.out) > math.Abs(c.out)*1e-7 {
			t.Errorf("0x%.4x -> %v, expected %v", c.in, v, c.out)
		}
	}
}
