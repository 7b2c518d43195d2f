// Package preview draws a quick top-view layout of a converted scene so the
// placement of objects can be checked without launching Blender. Blender +X
// maps to image right and +Y to image up. Asset footprints are drawn as
// their placed unit box (the auto-fit span), which is approximate for
// assets imported without normalization.
package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skewer-project/skewer2blend/internal/convert"
)

// Supersampling factor before the final downscale.
const oversample = 2

var (
	background = color.NRGBA{24, 24, 28, 255}
	sphereCol  = color.NRGBA{120, 170, 255, 255}
	quadCol    = color.NRGBA{120, 220, 140, 255}
	assetCol   = color.NRGBA{235, 180, 90, 255}
	cameraCol  = color.NRGBA{240, 90, 90, 255}
)

// Render rasterizes the instruction list into a square top-view image of the
// given output size.
func Render(instrs []convert.Instruction, size int) *image.NRGBA {
	c := newCanvas(size * oversample)
	c.fit(instrs)
	for _, in := range instrs {
		switch in := in.(type) {
		case convert.CreateSphere:
			c.sphere(in)
		case convert.CreateQuad:
			c.quad(in)
		case convert.ApplyTransform:
			c.asset(in)
		case convert.CreateCamera:
			c.camera(in)
		}
	}
	return Downsample(c.img, size)
}

type canvas struct {
	img   *image.NRGBA
	size  int
	scale float64 // world units → pixels
	cx    float64 // world center
	cy    float64
}

func newCanvas(size int) *canvas {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}
	return &canvas{img: img, size: size}
}

// fit computes the world-to-pixel mapping from the extents of everything
// that will be drawn, with a 10% margin.
func (c *canvas) fit(instrs []convert.Instruction) {
	inf := math.Inf(1)
	minX, minY, maxX, maxY := inf, inf, -inf, -inf
	grow := func(x, y, r float64) {
		minX = math.Min(minX, x-r)
		minY = math.Min(minY, y-r)
		maxX = math.Max(maxX, x+r)
		maxY = math.Max(maxY, y+r)
	}
	for _, in := range instrs {
		switch in := in.(type) {
		case convert.CreateSphere:
			grow(in.Center[0], in.Center[1], in.Radius)
		case convert.CreateQuad:
			for _, v := range in.Vertices {
				grow(v[0], v[1], 0)
			}
		case convert.ApplyTransform:
			for _, p := range boxCorners(in.Placement.Matrix()) {
				grow(p[0], p[1], 0)
			}
		case convert.CreateCamera:
			eye := in.World.Col(3).Vec3()
			grow(eye[0], eye[1], 1)
		}
	}
	if minX > maxX {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span < 1e-6 {
		span = 1e-6
	}
	c.scale = float64(c.size) / (span * 1.1)
	c.cx = (minX + maxX) / 2
	c.cy = (minY + maxY) / 2
}

func (c *canvas) toPx(x, y float64) (float64, float64) {
	half := float64(c.size) / 2
	return half + (x-c.cx)*c.scale, half - (y-c.cy)*c.scale
}

func (c *canvas) sphere(in convert.CreateSphere) {
	px, py := c.toPx(in.Center[0], in.Center[1])
	c.disc(px, py, in.Radius*c.scale, sphereCol)
}

func (c *canvas) quad(in convert.CreateQuad) {
	for i := 0; i < 4; i++ {
		a := in.Vertices[i]
		b := in.Vertices[(i+1)%4]
		ax, ay := c.toPx(a[0], a[1])
		bx, by := c.toPx(b[0], b[1])
		c.line(ax, ay, bx, by, quadCol)
	}
}

// boxEdges pairs the unit-box corner indices that share an edge.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (c *canvas) asset(in convert.ApplyTransform) {
	corners := boxCorners(in.Placement.Matrix())
	for _, e := range boxEdges {
		a, b := corners[e[0]], corners[e[1]]
		ax, ay := c.toPx(a[0], a[1])
		bx, by := c.toPx(b[0], b[1])
		c.line(ax, ay, bx, by, assetCol)
	}
}

func (c *canvas) camera(in convert.CreateCamera) {
	eye := in.World.Col(3).Vec3()
	// The camera looks along its local -Z.
	dir := in.World.Col(2).Vec3().Mul(-1)
	ex, ey := c.toPx(eye[0], eye[1])
	tip := eye.Add(dir)
	tx, ty := c.toPx(tip[0], tip[1])
	c.line(ex, ey, tx, ty, cameraCol)
	c.disc(ex, ey, 4*oversample, cameraCol)
}

// boxCorners transforms the corners of the [-1,1] cube by the placement
// world matrix.
func boxCorners(m mgl64.Mat4) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		p := mgl64.Vec3{-1, -1, -1}
		if i&1 != 0 {
			p[0] = 1
		}
		if i&2 != 0 {
			p[1] = 1
		}
		if i&4 != 0 {
			p[2] = 1
		}
		out[i] = m.Mul4x1(p.Vec4(1)).Vec3()
	}
	return out
}

func (c *canvas) set(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.size || y >= c.size {
		return
	}
	c.img.SetNRGBA(x, y, col)
}

func (c *canvas) disc(cx, cy, r float64, col color.NRGBA) {
	if r < 1 {
		r = 1
	}
	x0, x1 := int(cx-r)-1, int(cx+r)+1
	y0, y1 := int(cy-r)-1, int(cy+r)+1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r {
				c.set(x, y, col)
			}
		}
	}
}

func (c *canvas) line(x0, y0, x1, y1 float64, col color.NRGBA) {
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), col)
	}
}
