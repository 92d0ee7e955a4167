// transform_matrix.go - 4x4 transform and projection matrices for Xosera Draw

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
	PROJ_NEAR = 0.1
	PROJ_FAR  = 1000.0
)

// Mat4 is a row-major 4x4 matrix; vectors are rows, translation lives in row 3
type Mat4 [4][4]float64

// Vec3D is a homogeneous point or direction
type Vec3D struct {
	X, Y, Z, W float64
}

// Vec returns a point with W=1
func Vec(x, y, z float64) Vec3D {
	return Vec3D{X: x, Y: y, Z: z, W: 1}
}

func MakeIdentity() Mat4 {
	var m Mat4
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	m[3][3] = 1
	return m
}

func MakeRotationX(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	var m Mat4
	m[0][0] = 1
	m[1][1] = c
	m[1][2] = s
	m[2][1] = -s
	m[2][2] = c
	m[3][3] = 1
	return m
}

func MakeRotationY(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	var m Mat4
	m[0][0] = c
	m[0][2] = s
	m[1][1] = 1
	m[2][0] = -s
	m[2][2] = c
	m[3][3] = 1
	return m
}

func MakeRotationZ(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	var m Mat4
	m[0][0] = c
	m[0][1] = s
	m[1][0] = -s
	m[1][1] = c
	m[2][2] = 1
	m[3][3] = 1
	return m
}

func MakeTranslation(dx, dy, dz float64) Mat4 {
	m := MakeIdentity()
	m[3][0] = dx
	m[3][1] = dy
	m[3][2] = dz
	return m
}

// MakeProjection builds a perspective projection for a width x height screen.
// W of the result carries view space Z for the perspective divide.
func MakeProjection(width, height, fovDegrees float64) Mat4 {
	aspect := height / width
	f := 1 / math.Tan(fovDegrees*0.5/180*math.Pi)

	var m Mat4
	m[0][0] = aspect * f
	m[1][1] = f
	m[2][2] = PROJ_FAR / (PROJ_FAR - PROJ_NEAR)
	m[3][2] = -PROJ_FAR * PROJ_NEAR / (PROJ_FAR - PROJ_NEAR)
	m[2][3] = 1
	m[3][3] = 0
	return m
}

// Multiply returns a x b; applying the result equals applying a then b
func Multiply(a, b Mat4) Mat4 {
	var m Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r][c] = a[r][0]*b[0][c] + a[r][1]*b[1][c] + a[r][2]*b[2][c] + a[r][3]*b[3][c]
		}
	}
	return m
}

// MultiplyVector returns the row vector v times m
func MultiplyVector(m Mat4, v Vec3D) Vec3D {
	return Vec3D{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		W: v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

func (v Vec3D) Sub(o Vec3D) Vec3D {
	return Vec3D{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z, W: 1}
}

func (v Vec3D) Dot(o Vec3D) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3D) Cross(o Vec3D) Vec3D {
	return Vec3D{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
		W: 1,
	}
}

// ToScreen divides by W and maps clip space to pixels centered on the screen
func (v Vec3D) ToScreen(width, height float64) (x, y float64, ok bool) {
	if v.W <= 0 {
		return 0, 0, false
	}
	x = (v.X/v.W + 1) * width / 2
	y = (v.Y/v.W + 1) * height / 2
	return x, y, true
}

// TransformBackend applies a matrix to a vector in some number format
type TransformBackend interface {
	Name() string
	Transform(m Mat4, v Vec3D) Vec3D
}

// FloatBackend transforms in float64
type FloatBackend struct{}

func (FloatBackend) Name() string { return "float" }

func (FloatBackend) Transform(m Mat4, v Vec3D) Vec3D {
	return MultiplyVector(m, v)
}
