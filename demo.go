// demo.go - Demo sequencer for Xosera Draw

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
	"context"
	"math"
	"math/rand"
)

const (
	DEFAULT_DEMO_RECTS          = 100
	DEFAULT_DEMO_TRIANGLES      = 50
	DEFAULT_RECT_ITERATIONS     = 1000
	DEFAULT_TRIANGLE_ITERATIONS = 500
	DEFAULT_CUBE_ITERATIONS     = 100
	DEFAULT_MODEL_ITERATIONS    = 10
	DEFAULT_HOLD_MS             = 2000

	STARBURST_SPOKES = 256
	STARBURST_RADIUS = 80
	LETTER_PASSES    = 10
	ROTATION_STEP    = 0.1
	MODEL_DISTANCE   = 3
)

// Demo phase names reported through OnPhase
const (
	PhaseTitle     = "title"
	PhaseLines     = "lines"
	PhaseRects     = "rectangles"
	PhaseTriangles = "triangles"
	PhaseCube      = "cube"
	PhaseModel     = "model"
)

// DemoConfig sets the size of each demo phase
type DemoConfig struct {
	Rects              int
	Triangles          int
	RectIterations     int
	TriangleIterations int
	CubeIterations     int
	ModelIterations    int
	HoldMs             int   // How long still images stay up
	Loops              int   // Passes through all phases, 0 runs until cancelled
	Seed               int64 // Particle random seed
	Title              string
}

// DefaultDemoConfig returns the phase sizes of the original demo loop
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		Rects:              DEFAULT_DEMO_RECTS,
		Triangles:          DEFAULT_DEMO_TRIANGLES,
		RectIterations:     DEFAULT_RECT_ITERATIONS,
		TriangleIterations: DEFAULT_TRIANGLE_ITERATIONS,
		CubeIterations:     DEFAULT_CUBE_ITERATIONS,
		ModelIterations:    DEFAULT_MODEL_ITERATIONS,
		HoldMs:             DEFAULT_HOLD_MS,
		Seed:               1,
		Title:              "Xosera\nDraw\nDemo\n",
	}
}

// Particle is a bouncing point with a size and a color
type Particle struct {
	X, Y           int
	Radius         int
	Color          uint8
	SpeedX, SpeedY int
}

// step moves the particle and reverses any speed that reached the bounds
func (p *Particle) step(width, height int) {
	p.X += p.SpeedX
	p.Y += p.SpeedY
	if p.X <= 0 || p.X >= width {
		p.SpeedX = -p.SpeedX
	}
	if p.Y <= 0 || p.Y >= height {
		p.SpeedY = -p.SpeedY
	}
}

// letterStrokes draws the demo lettering on a 18x5 grid
var letterStrokes = [][4]float64{
	{0, 0, 2, 4}, {0, 4, 2, 0}, {3, 4, 3, 0}, {3, 0, 5, 0}, {5, 0, 5, 4},
	{5, 4, 3, 4}, {8, 0, 6, 0}, {6, 0, 6, 2}, {6, 2, 8, 2}, {8, 2, 8, 4},
	{8, 4, 6, 4}, {9, 0, 11, 0}, {9, 0, 9, 4}, {9, 2, 11, 2}, {9, 4, 11, 4},
	{12, 0, 14, 0}, {14, 0, 14, 2}, {14, 2, 12, 2}, {12, 2, 14, 4}, {12, 4, 12, 0},
	{15, 4, 16, 0}, {16, 0, 17, 4}, {15.5, 2, 16.5, 2},
}

// Demo runs the title, lines, rectangles, triangles and model phases in a loop
type Demo struct {
	engine *DrawEngine
	cfg    DemoConfig
	rng    *rand.Rand
	cube   *Model
	model  *Model

	// OnPhase is called when a phase starts
	OnPhase func(phase string)
}

// NewDemo prepares a demo; model is drawn filled after the cube phase
func NewDemo(e *DrawEngine, cfg DemoConfig, cube, model *Model) *Demo {
	return &Demo{
		engine: e,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		cube:   cube,
		model:  model,
	}
}

func (d *Demo) phase(name string) {
	if d.OnPhase != nil {
		d.OnPhase(name)
	}
}

// Run loops through the phases until Loops passes are done or ctx ends
func (d *Demo) Run(ctx context.Context) error {
	for pass := 0; d.cfg.Loops == 0 || pass < d.cfg.Loops; pass++ {
		if err := d.RunOnce(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunOnce plays every phase once
func (d *Demo) RunOnce(ctx context.Context) error {
	e := d.engine
	steps := []func(context.Context) error{
		d.Title,
		func(context.Context) error { return e.Init() },
		d.Lines,
		d.Rectangles,
		d.Triangles,
		func(ctx context.Context) error {
			d.phase(PhaseCube)
			return d.Model(ctx, d.cube, d.cfg.CubeIterations, true)
		},
		func(ctx context.Context) error {
			d.phase(PhaseModel)
			return d.Model(ctx, d.model, d.cfg.ModelIterations, false)
		},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step(ctx); err != nil {
			return err
		}
	}
	e.EnableCopper(false)
	return nil
}

func (d *Demo) hold() error {
	return d.engine.port.Delay(d.cfg.HoldMs)
}

// Title shows the banner in text mode between two fades
func (d *Demo) Title(ctx context.Context) error {
	d.phase(PhaseTitle)
	e := d.engine
	e.EnableCopper(false)
	e.TextMode()
	e.console.SetColor(DEFAULT_TEXT_COLOR)
	e.console.Cls()
	e.console.Print(d.cfg.Title)

	e.SetPalette(BuildRainbowPalette())
	if err := e.FadeIn(); err != nil {
		return err
	}
	if err := d.hold(); err != nil {
		return err
	}
	return e.FadeOut()
}

// Lines draws a starburst and the scaled vector lettering
func (d *Demo) Lines(ctx context.Context) error {
	d.phase(PhaseLines)
	e := d.engine
	c := e.canvas
	e.Clear()

	angle := 0.0
	for i := 0; i < STARBURST_SPOKES; i++ {
		x := STARBURST_RADIUS * math.Cos(angle)
		y := STARBURST_RADIUS * math.Sin(angle)
		c.DrawLine(240, 120, 240+x, 120+y, uint8(i%(PALETTE_SIZE-PALETTE_FIXED)+PALETTE_FIXED))
		angle += 2 * math.Pi / STARBURST_SPOKES
	}

	scaleX, scaleY := 4.0, 5.0
	offsetX, offsetY := 0.0, 0.0
	for i := 0; i < LETTER_PASSES; i++ {
		for _, s := range letterStrokes {
			c.DrawLine(s[0]*scaleX+offsetX, s[1]*scaleY+offsetY, s[2]*scaleX+offsetX, s[3]*scaleY+offsetY, uint8(i+2))
		}
		offsetY += 5 * scaleY
		scaleX++
		scaleY++
	}

	if err := e.Present(true); err != nil {
		return err
	}
	e.SetPalette(BuildRainbowPalette())
	if err := e.FadeIn(); err != nil {
		return err
	}
	if err := d.hold(); err != nil {
		return err
	}
	return e.FadeOut()
}

func (d *Demo) newParticles(n int, withRadius bool) []Particle {
	w, h := d.engine.Size()
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:      d.rng.Intn(w),
			Y:      d.rng.Intn(h),
			Color:  uint8(d.rng.Intn(PALETTE_SIZE)),
			SpeedX: d.rng.Intn(10) - 5,
			SpeedY: d.rng.Intn(10) - 5,
		}
		if withRadius {
			ps[i].Radius = d.rng.Intn(10) + 5
		}
	}
	return ps
}

// startAnimation clears both buffers to black and fades the rainbow palette in
func (d *Demo) startAnimation(p Palette) error {
	e := d.engine
	e.Clear()
	if err := e.Present(true); err != nil {
		return err
	}
	e.SetPalette(p)
	return e.FadeIn()
}

// Rectangles bounces filled squares around the screen
func (d *Demo) Rectangles(ctx context.Context) error {
	d.phase(PhaseRects)
	e := d.engine
	w, h := e.Size()
	ps := d.newParticles(d.cfg.Rects, true)

	if err := d.startAnimation(BuildRainbowPalette()); err != nil {
		return err
	}
	for i := 0; i < d.cfg.RectIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Clear()
		for _, p := range ps {
			e.canvas.DrawFilledRectangle(float64(p.X-p.Radius), float64(p.Y-p.Radius),
				float64(p.X+p.Radius), float64(p.Y+p.Radius), p.Color)
		}
		if err := e.Present(true); err != nil {
			return err
		}
		for j := range ps {
			ps[j].step(w, h)
		}
	}
	return e.FadeOut()
}

// Triangles bounces filled triangles whose corners move independently
func (d *Demo) Triangles(ctx context.Context) error {
	d.phase(PhaseTriangles)
	e := d.engine
	w, h := e.Size()
	ps := d.newParticles(3*d.cfg.Triangles, false)

	if err := d.startAnimation(BuildRainbowPalette()); err != nil {
		return err
	}
	for i := 0; i < d.cfg.TriangleIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Clear()
		for j := 0; j+2 < len(ps); j += 3 {
			a, b, c := ps[j], ps[j+1], ps[j+2]
			e.canvas.DrawFilledTriangle(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y),
				float64(c.X), float64(c.Y), a.Color)
		}
		for j := range ps {
			ps[j].step(w, h)
		}
		if err := e.Present(true); err != nil {
			return err
		}
	}
	return e.FadeOut()
}

// Model spins a model about Z and X in front of the camera
func (d *Demo) Model(ctx context.Context, model *Model, iterations int, wireframe bool) error {
	if model == nil {
		return nil
	}
	e := d.engine
	w, h := e.Size()
	if err := d.startAnimation(BuildGrayscalePalette()); err != nil {
		return err
	}

	proj := MakeProjection(float64(w), float64(h), e.cfg.FOV)
	camera := Vec(0, 0, 0)
	view := MakeIdentity()
	theta := 0.0
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Clear()
		world := Multiply(MakeRotationZ(theta), MakeRotationX(theta))
		world = Multiply(world, MakeTranslation(0, 0, MODEL_DISTANCE))
		e.DrawModel(float64(w), float64(h), camera, model, world, proj, view, true, wireframe)
		if err := e.Present(true); err != nil {
			return err
		}
		theta += ROTATION_STEP
	}
	return e.FadeOut()
}
