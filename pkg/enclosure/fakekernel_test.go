package enclosure

import (
	"fmt"
	"math"

	"github.com/sealcase/sealcase/pkg/kernel"
)

// fakeSolid tracks a bounding box and an emptiness flag, enough for the
// pipeline's splitting and sanity checks without real geometry.
type fakeSolid struct {
	min, max [3]float64
	empty    bool
}

func (s *fakeSolid) BoundingBox() (min, max [3]float64) { return s.min, s.max }

type fakeProfile struct {
	min, max [2]float64
}

func (p *fakeProfile) Bounds() (min, max [2]float64) { return p.min, p.max }

// fakeKernel records every operation the pipeline issues. Setting failOp
// makes the named operation fail, for error propagation tests.
type fakeKernel struct {
	ops    []string
	failOp string
}

var _ kernel.Kernel = (*fakeKernel)(nil)

func (k *fakeKernel) record(op string) error {
	k.ops = append(k.ops, op)
	if op == k.failOp {
		return fmt.Errorf("forced %s failure", op)
	}
	return nil
}

func (k *fakeKernel) count(op string) int {
	n := 0
	for _, o := range k.ops {
		if o == op {
			n++
		}
	}
	return n
}

func centeredBase(x, y, z float64) *fakeSolid {
	return &fakeSolid{
		min: [3]float64{-x / 2, -y / 2, 0},
		max: [3]float64{x / 2, y / 2, z},
	}
}

func (k *fakeKernel) Box(x, y, z float64) (kernel.Solid, error) {
	if err := k.record("box"); err != nil {
		return nil, err
	}
	return centeredBase(x, y, z), nil
}

func (k *fakeKernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	if err := k.record("cylinder"); err != nil {
		return nil, err
	}
	return centeredBase(2*radius, 2*radius, height), nil
}

func (k *fakeKernel) Cone(height, baseRadius, topRadius float64) (kernel.Solid, error) {
	if err := k.record("cone"); err != nil {
		return nil, err
	}
	r := math.Max(baseRadius, topRadius)
	return centeredBase(2*r, 2*r, height), nil
}

func (k *fakeKernel) Rectangle(x, y, round float64) (kernel.Profile, error) {
	if err := k.record("rectangle"); err != nil {
		return nil, err
	}
	if round < 0 || 2*round >= math.Min(x, y) {
		return nil, fmt.Errorf("rectangle round %g does not fit (%g, %g)", round, x, y)
	}
	return &fakeProfile{min: [2]float64{-x / 2, -y / 2}, max: [2]float64{x / 2, y / 2}}, nil
}

func (k *fakeKernel) Circle(radius float64) (kernel.Profile, error) {
	if err := k.record("circle"); err != nil {
		return nil, err
	}
	return &fakeProfile{min: [2]float64{-radius, -radius}, max: [2]float64{radius, radius}}, nil
}

func (k *fakeKernel) Cutout(outer, inner kernel.Profile) kernel.Profile {
	k.record("cutout")
	return outer
}

func (k *fakeKernel) Extrude(p kernel.Profile, height float64) (kernel.Solid, error) {
	if err := k.record("extrude"); err != nil {
		return nil, err
	}
	min, max := p.Bounds()
	return &fakeSolid{
		min: [3]float64{min[0], min[1], 0},
		max: [3]float64{max[0], max[1], height},
	}, nil
}

func (k *fakeKernel) Union(a, b kernel.Solid) kernel.Solid {
	k.record("union")
	fa, fb := a.(*fakeSolid), b.(*fakeSolid)
	out := &fakeSolid{empty: fa.empty && fb.empty}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Min(fa.min[i], fb.min[i])
		out.max[i] = math.Max(fa.max[i], fb.max[i])
	}
	return out
}

func (k *fakeKernel) Difference(a, b kernel.Solid) kernel.Solid {
	k.record("difference")
	fa := a.(*fakeSolid)
	return &fakeSolid{min: fa.min, max: fa.max, empty: fa.empty}
}

func (k *fakeKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	k.record("intersection")
	fa, fb := a.(*fakeSolid), b.(*fakeSolid)
	out := &fakeSolid{}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Max(fa.min[i], fb.min[i])
		out.max[i] = math.Min(fa.max[i], fb.max[i])
		if out.min[i] >= out.max[i] {
			out.empty = true
		}
	}
	out.empty = out.empty || fa.empty || fb.empty
	return out
}

func (k *fakeKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	k.record("translate")
	f := s.(*fakeSolid)
	return &fakeSolid{
		min:   [3]float64{f.min[0] + x, f.min[1] + y, f.min[2] + z},
		max:   [3]float64{f.max[0] + x, f.max[1] + y, f.max[2] + z},
		empty: f.empty,
	}
}

func (k *fakeKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	k.record("rotate")
	return s
}

func (k *fakeKernel) Round(s kernel.Solid, within kernel.Region, radius float64) (kernel.Solid, error) {
	if err := k.record("round"); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, fmt.Errorf("round radius must be positive")
	}
	sx, sy, sz := within.Size()
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, fmt.Errorf("degenerate region")
	}
	return s, nil
}

func (k *fakeKernel) Fillet(s kernel.Solid, within kernel.Region, radius float64) (kernel.Solid, error) {
	if err := k.record("fillet"); err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, fmt.Errorf("fillet radius must be positive")
	}
	sx, sy, sz := within.Size()
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, fmt.Errorf("degenerate region")
	}
	return s, nil
}

func (k *fakeKernel) IsEmpty(s kernel.Solid) bool {
	k.record("isempty")
	return s.(*fakeSolid).empty
}

func (k *fakeKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	if err := k.record("tomesh"); err != nil {
		return nil, err
	}
	return &kernel.Mesh{}, nil
}
