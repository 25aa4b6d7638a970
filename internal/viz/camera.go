package viz

import (
	"math"
	"sort"

	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

const (
	minZoom = 0.1
	maxZoom = 10

	// fadeCutoff hides sprites that have all but faded out.
	fadeCutoff = 0.05
	// maxRadius caps sprite discs, in dots.
	maxRadius = 3
)

// Camera orbits the origin and projects world points onto a screen. Fit
// sets the world extent that maps onto a third of the smaller screen side
// at zoom 1.
type Camera struct {
	Distance, Near   float64
	RotX, RotY, RotZ float64
	Zoom             float64
	unit             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, Zoom: 1, unit: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

func (c *Camera) Fit(extent float64) {
	if extent > 0 {
		c.unit = 1 / extent
	}
}

// Reset clears rotation and zoom but keeps the fitted extent.
func (c *Camera) Reset() {
	c.RotX, c.RotY, c.RotZ = 0, 0, 0
	c.Zoom = 1
}

// RotatePoint rotates p around the X, then Y, then Z axis.
func (c *Camera) RotatePoint(p physics.Vector3) physics.Vector3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

func screenUnit(sw, sh int) float64 {
	return math.Min(float64(sw), float64(sh)) / 3.0
}

// PixelsPerUnit is the on-screen size of one world unit at the origin.
func (c *Camera) PixelsPerUnit(sw, sh int) float64 {
	return screenUnit(sw, sh) * c.Zoom * c.unit
}

// Project converts a world point to screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p physics.Vector3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom * c.unit)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := screenUnit(sw, sh)
	sx := int(math.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End physics.Vector3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                    { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e physics.Vector3) { w.Edges = append(w.Edges, Edge{s, e}) }

// CreateAxesWireframe returns the three positive axes of length l.
func CreateAxesWireframe(l float64) *Wireframe {
	w := NewWireframe()
	for _, axis := range []physics.Axis{physics.AxisX, physics.AxisY, physics.AxisZ} {
		w.AddEdge(physics.Vector3{}, axis.Unit().Scale(l))
	}
	return w
}

// CreateGroundWireframe returns a square grid on the y=0 plane.
func CreateGroundWireframe(half float64, lines int) *Wireframe {
	w := NewWireframe()
	if lines < 2 {
		lines = 2
	}
	step := 2 * half / float64(lines-1)
	for i := 0; i < lines; i++ {
		o := -half + float64(i)*step
		w.AddEdge(physics.Vec3(o, 0, -half), physics.Vec3(o, 0, half))
		w.AddEdge(physics.Vec3(-half, 0, o), physics.Vec3(half, 0, o))
	}
	return w
}

// RenderWireframe draws every edge with at least one visible end.
func RenderWireframe(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Dots()
	for _, e := range w.Edges {
		x1, y1, _, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, _, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
}

type projectedSprite struct {
	x, y, r int
	depth   float64
}

// RenderSprites draws sprites far to near as discs sized by Scale. Nearly
// transparent sprites are skipped; half-faded ones shrink to a single dot.
func RenderSprites(c *Canvas, sprites []scenario.Sprite, cam *Camera) int {
	if c == nil || cam == nil {
		return 0
	}
	sw, sh := c.Dots()
	ppu := cam.PixelsPerUnit(sw, sh)

	proj := make([]projectedSprite, 0, len(sprites))
	for _, s := range sprites {
		if s.Alpha < fadeCutoff {
			continue
		}
		x, y, depth, ok := cam.Project(s.Position, sw, sh)
		if !ok {
			continue
		}
		r := 0
		if s.Alpha >= 0.5 {
			r = int(math.Min(maxRadius, s.Scale*ppu/2))
		}
		proj = append(proj, projectedSprite{x, y, r, depth})
	}

	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, p := range proj {
		c.DrawDisc(p.x, p.y, p.r)
	}
	return len(proj)
}

// Extent returns the largest absolute coordinate among sprites.
func Extent(sprites []scenario.Sprite) float64 {
	ext := 0.0
	for _, s := range sprites {
		ext = math.Max(ext, math.Max(math.Abs(s.Position.X), math.Max(math.Abs(s.Position.Y), math.Abs(s.Position.Z))))
	}
	return ext
}
