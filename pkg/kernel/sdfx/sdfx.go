// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/sealcase/sealcase/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// solid wraps an sdf.SDF3 to implement kernel.Solid.
type solid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *solid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// profile wraps an sdf.SDF2 to implement kernel.Profile.
type profile struct {
	s sdf.SDF2
}

// Bounds returns the axis-aligned 2D bounding rectangle.
func (p *profile) Bounds() (min, max [2]float64) {
	bb := p.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}

// Kernel implements kernel.Kernel using sdfx signed distance fields.
type Kernel struct {
	// MeshCells is the marching cubes resolution used by ToMesh.
	// Zero selects the default.
	MeshCells int
}

// New returns a Kernel with the default mesh resolution.
func New() *Kernel {
	return &Kernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*solid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &solid{s: s}
}

// unwrap2 extracts the underlying sdf.SDF2 from a kernel.Profile.
func unwrap2(p kernel.Profile) sdf.SDF2 {
	return p.(*profile).s
}

// Box creates a box with the given dimensions, centered in X and Y with
// its base on the z=0 plane. sdf.Box3D centers the box at the origin, so
// we shift up by half the height.
func (k *Kernel) Box(x, y, z float64) (kernel.Solid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("sdfx: box dimensions must be positive, got (%g, %g, %g)", x, y, z)
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Box3D: %w", err)
	}
	return wrap(baseAtZero(s, z)), nil
}

// Cylinder creates a Z-axis cylinder centered in X and Y with its base on
// the z=0 plane.
func (k *Kernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("sdfx: cylinder must have positive height and radius, got (%g, %g)", height, radius)
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Cylinder3D: %w", err)
	}
	return wrap(baseAtZero(s, height)), nil
}

// Cone creates a truncated Z-axis cone with baseRadius at z=0 and
// topRadius at z=height.
func (k *Kernel) Cone(height, baseRadius, topRadius float64) (kernel.Solid, error) {
	if height <= 0 || baseRadius <= 0 || topRadius <= 0 {
		return nil, fmt.Errorf("sdfx: cone must have positive dimensions, got (%g, %g, %g)", height, baseRadius, topRadius)
	}
	s, err := sdf.Cone3D(height, baseRadius, topRadius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Cone3D: %w", err)
	}
	return wrap(baseAtZero(s, height)), nil
}

// baseAtZero shifts a center-origin solid so its base sits on z=0.
func baseAtZero(s sdf.SDF3, height float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: height / 2}))
}

// Rectangle creates a centered 2D rectangle profile. A positive round
// radius rounds the four corners, which yields filleted vertical edges
// once the profile is extruded.
func (k *Kernel) Rectangle(x, y, round float64) (kernel.Profile, error) {
	if x <= 0 || y <= 0 {
		return nil, fmt.Errorf("sdfx: rectangle dimensions must be positive, got (%g, %g)", x, y)
	}
	if round < 0 || 2*round >= math.Min(x, y) {
		return nil, fmt.Errorf("sdfx: rectangle round %g does not fit (%g, %g)", round, x, y)
	}
	s := sdf.Box2D(v2.Vec{X: x, Y: y}, round)
	return &profile{s: s}, nil
}

// Circle creates a centered 2D circle profile.
func (k *Kernel) Circle(radius float64) (kernel.Profile, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sdfx: circle radius must be positive, got %g", radius)
	}
	s, err := sdf.Circle2D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Circle2D: %w", err)
	}
	return &profile{s: s}, nil
}

// Cutout returns the 2D difference outer minus inner, e.g. a rectangular
// ring for gasket channels.
func (k *Kernel) Cutout(outer, inner kernel.Profile) kernel.Profile {
	return &profile{s: sdf.Difference2D(unwrap2(outer), unwrap2(inner))}
}

// Extrude extrudes a profile along Z from z=0 to z=height.
// sdf.Extrude3D extrudes symmetrically about the XY plane, so we shift up.
func (k *Kernel) Extrude(p kernel.Profile, height float64) (kernel.Solid, error) {
	if height <= 0 {
		return nil, fmt.Errorf("sdfx: extrusion height must be positive, got %g", height)
	}
	return wrap(baseAtZero(sdf.Extrude3D(unwrap2(p), height), height)), nil
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Round smooths convex edges within the region using a morphological
// opening: the distance field is eroded by the radius and dilated back,
// which replaces sharp exterior edges with an arc of the given radius.
// Geometry outside the region keeps its sharp edges.
func (k *Kernel) Round(s kernel.Solid, within kernel.Region, radius float64) (kernel.Solid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sdfx: round radius must be positive, got %g", radius)
	}
	body := unwrap(s)
	opened := sdf.Offset3D(sdf.Offset3D(body, -radius), radius)
	return k.restrict(body, opened, within)
}

// Fillet smooths concave edges within the region using a morphological
// closing (dilate, then erode), adding a fillet of the given radius where
// two faces meet in an interior corner. Geometry outside the region is
// untouched.
func (k *Kernel) Fillet(s kernel.Solid, within kernel.Region, radius float64) (kernel.Solid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sdfx: fillet radius must be positive, got %g", radius)
	}
	body := unwrap(s)
	closed := sdf.Offset3D(sdf.Offset3D(body, radius), -radius)
	return k.restrict(body, closed, within)
}

// restrict splices the smoothed field into the original body inside the
// selection region only.
func (k *Kernel) restrict(body, smoothed sdf.SDF3, within kernel.Region) (kernel.Solid, error) {
	sx, sy, sz := within.Size()
	if sx <= 0 || sy <= 0 || sz <= 0 {
		return nil, fmt.Errorf("sdfx: degenerate selection region %v", within)
	}
	band, err := sdf.Box3D(v3.Vec{X: sx, Y: sy, Z: sz}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: selection region: %w", err)
	}
	center := v3.Vec{
		X: (within.Min[0] + within.Max[0]) / 2,
		Y: (within.Min[1] + within.Max[1]) / 2,
		Z: (within.Min[2] + within.Max[2]) / 2,
	}
	band3 := sdf.Transform3D(band, sdf.Translate3d(center))
	inside := sdf.Intersect3D(smoothed, band3)
	outside := sdf.Difference3D(body, band3)
	return wrap(sdf.Union3D(outside, inside)), nil
}

// emptyProbeCells is the per-axis interior sample count used by IsEmpty.
const emptyProbeCells = 16

// IsEmpty samples the signed distance field over the bounding box and
// reports whether any sample falls inside the material. Besides a uniform
// interior grid, samples are taken just inside each bounding box face so
// thin shells hugging the box boundary (gasket rings) are not missed.
func (k *Kernel) IsEmpty(s kernel.Solid) bool {
	body := unwrap(s)
	bb := body.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return true
	}

	coords := func(lo, hi float64) []float64 {
		ext := hi - lo
		cs := make([]float64, 0, emptyProbeCells+4)
		// Boundary-hugging probes for thin walls.
		cs = append(cs, lo+ext*0.005, lo+ext*0.02, hi-ext*0.02, hi-ext*0.005)
		for i := 0; i < emptyProbeCells; i++ {
			cs = append(cs, lo+ext*(float64(i)+0.5)/emptyProbeCells)
		}
		return cs
	}

	xs := coords(bb.Min.X, bb.Max.X)
	ys := coords(bb.Min.Y, bb.Max.Y)
	zs := coords(bb.Min.Z, bb.Max.Z)
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				if body.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
					return false
				}
			}
		}
	}
	return true
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	cells := k.MeshCells
	if cells <= 0 {
		cells = defaultMeshCells
	}

	sdf3 := unwrap(s)
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Face normal, repeated per corner.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
