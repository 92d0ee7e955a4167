// transform_fixed.go - 16.16 fixed-point transform backend for Xosera Draw

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"math"
)

const (
	FIXED_SHIFT = 16
	FIXED_ONE   = 1 << FIXED_SHIFT
)

// Fixed is a signed 16.16 fixed-point number
type Fixed int32

// FX converts a float to 16.16, rounding to nearest and saturating
func FX(f float64) Fixed {
	v := math.Round(f * FIXED_ONE)
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return Fixed(v)
}

func (f Fixed) Float() float64 {
	return float64(f) / FIXED_ONE
}

// Mul multiplies with a 64-bit intermediate, saturating like FX
func (f Fixed) Mul(g Fixed) Fixed {
	return saturateFixed((int64(f) * int64(g)) >> FIXED_SHIFT)
}

func saturateFixed(v int64) Fixed {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return Fixed(v)
}

// FixedMat4 mirrors Mat4 in 16.16
type FixedMat4 [4][4]Fixed

// FixedVec3D mirrors Vec3D in 16.16
type FixedVec3D struct {
	X, Y, Z, W Fixed
}

func ToFixedMat4(m Mat4) FixedMat4 {
	var fm FixedMat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			fm[r][c] = FX(m[r][c])
		}
	}
	return fm
}

func ToFixedVec(v Vec3D) FixedVec3D {
	return FixedVec3D{X: FX(v.X), Y: FX(v.Y), Z: FX(v.Z), W: FX(v.W)}
}

func (v FixedVec3D) Float() Vec3D {
	return Vec3D{X: v.X.Float(), Y: v.Y.Float(), Z: v.Z.Float(), W: v.W.Float()}
}

// FixedMultiplyVector returns the row vector v times m, accumulating in 64 bits
// and saturating each component
func FixedMultiplyVector(m FixedMat4, v FixedVec3D) FixedVec3D {
	col := func(c int) Fixed {
		sum := int64(v.X)*int64(m[0][c]) + int64(v.Y)*int64(m[1][c]) +
			int64(v.Z)*int64(m[2][c]) + int64(v.W)*int64(m[3][c])
		return saturateFixed(sum >> FIXED_SHIFT)
	}
	return FixedVec3D{X: col(0), Y: col(1), Z: col(2), W: col(3)}
}

// FixedBackend transforms in 16.16, converting at the vector boundary
type FixedBackend struct{}

func (FixedBackend) Name() string { return "fixed" }

func (FixedBackend) Transform(m Mat4, v Vec3D) Vec3D {
	return FixedMultiplyVector(ToFixedMat4(m), ToFixedVec(v)).Float()
}
