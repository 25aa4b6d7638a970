package viz

import (
	"math"
	"testing"

	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

func TestCamera_ProjectOrigin(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(physics.Vector3{}, 160, 96)
	if !ok || x != 80 || y != 48 {
		t.Errorf("origin projected to (%d,%d,%v)", x, y, ok)
	}
}

func TestCamera_ProjectOrientation(t *testing.T) {
	cam := NewCamera()
	cam.Fit(100)
	sw, sh := 160, 96

	x, _, _, _ := cam.Project(physics.Vec3(50, 0, 0), sw, sh)
	if x <= sw/2 {
		t.Errorf("+X should map right of centre, got %d", x)
	}
	_, y, _, _ := cam.Project(physics.Vec3(0, 50, 0), sw, sh)
	if y >= sh/2 {
		t.Errorf("+Y should map above centre, got %d", y)
	}

	cam.RotateY(math.Pi)
	x, _, _, _ = cam.Project(physics.Vec3(50, 0, 0), sw, sh)
	if x >= sw/2 {
		t.Errorf("half turn about Y should mirror X, got %d", x)
	}
}

func TestCamera_FitKeepsExtentOnScreen(t *testing.T) {
	cam := NewCamera()
	cam.Fit(500)

	for _, p := range []physics.Vector3{
		physics.Vec3(500, 0, 0),
		physics.Vec3(-500, 0, 0),
		physics.Vec3(0, 500, 0),
		physics.Vec3(0, -500, 0),
	} {
		if _, _, _, ok := cam.Project(p, 160, 96); !ok {
			t.Errorf("%v fell off screen", p)
		}
	}
}

func TestCamera_ZoomClamped(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != maxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", maxZoom, cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != minZoom {
		t.Errorf("expected zoom clamped to %v, got %v", minZoom, cam.Zoom)
	}

	cam.RotateX(1)
	cam.Reset()
	if cam.Zoom != 1 || cam.RotX != 0 {
		t.Errorf("reset left zoom=%v rotX=%v", cam.Zoom, cam.RotX)
	}
}

func TestRenderSprites(t *testing.T) {
	c := NewCanvas(40, 20)
	cam := NewCamera()
	cam.Fit(100)

	sprites := []scenario.Sprite{
		{Position: physics.Vec3(0, 0, 0), Scale: 10, Alpha: 1},
		{Position: physics.Vec3(50, 0, 0), Scale: 10, Alpha: 0.3},
		{Position: physics.Vec3(-50, 0, 0), Scale: 10, Alpha: 0.01},
		{Position: physics.Vec3(1e6, 0, 0), Scale: 1, Alpha: 1},
	}

	if n := RenderSprites(c, sprites, cam); n != 2 {
		t.Errorf("expected 2 drawn sprites, got %d", n)
	}

	sw, sh := c.Dots()
	cx, cy := sw/2, sh/2
	if !c.IsSet(cx, cy) || !c.IsSet(cx+1, cy) {
		t.Error("opaque sprite should draw a disc")
	}
}

func TestRenderWireframe(t *testing.T) {
	c := NewCanvas(40, 20)
	cam := NewCamera()
	cam.Fit(10)

	RenderWireframe(c, CreateAxesWireframe(5), cam)
	sw, sh := c.Dots()
	if !c.IsSet(sw/2, sh/2) {
		t.Error("axes should pass through the origin")
	}

	if n := len(CreateGroundWireframe(10, 5).Edges); n != 10 {
		t.Errorf("expected 10 grid edges, got %d", n)
	}
}

func TestExtent(t *testing.T) {
	sprites := []scenario.Sprite{
		{Position: physics.Vec3(3, -7, 1)},
		{Position: physics.Vec3(-2, 4, 5)},
	}
	if got := Extent(sprites); got != 7 {
		t.Errorf("expected extent 7, got %f", got)
	}
	if got := Extent(nil); got != 0 {
		t.Errorf("expected 0 for no sprites, got %f", got)
	}
}
