// Package kernel defines the abstract geometry kernel interface the
// enclosure pipeline builds against. Implementations (sdfx) provide solid
// construction, profile extrusion, boolean operations and edge rounding
// behind this interface, so backends can be swapped without changing the
// rest of the system.
//
// Placement convention shared by all constructors: solids are centered on
// the origin in X and Y and sit with their base on the z=0 plane. Stacked
// features (cavities, bores, channels) are placed by translating along Z.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Profile is an opaque handle to a planar (XY) cross-section used for
// extrusion. Profiles are centered on the origin.
type Profile interface {
	// Bounds returns the axis-aligned 2D bounding rectangle.
	Bounds() (min, max [2]float64)
}

// Region is an axis-aligned spatial predicate used to select the edges a
// Round or Fillet operation may touch. Geometry outside the region is
// left untouched.
type Region struct {
	Min, Max [3]float64
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(x, y, z float64) bool {
	return x >= r.Min[0] && x <= r.Max[0] &&
		y >= r.Min[1] && y <= r.Max[1] &&
		z >= r.Min[2] && z <= r.Max[2]
}

// Size returns the region extent along each axis.
func (r Region) Size() (x, y, z float64) {
	return r.Max[0] - r.Min[0], r.Max[1] - r.Min[1], r.Max[2] - r.Min[2]
}

// Kernel is the abstract geometry kernel interface. All operations are
// synchronous and deterministic. Constructors fail with an error on
// degenerate input (non-positive dimensions) instead of producing corrupt
// geometry; booleans and transforms always yield a new Solid and never
// mutate their operands.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)
	Cone(height, baseRadius, topRadius float64) (Solid, error)

	// Profiles and extrusion
	Rectangle(x, y, round float64) (Profile, error)
	Circle(radius float64) (Profile, error)
	Cutout(outer, inner Profile) Profile
	Extrude(p Profile, height float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Edge rounding. Round smooths convex (exterior) edges inside the
	// region; Fillet smooths concave (interior) edges inside the region.
	Round(s Solid, within Region, radius float64) (Solid, error)
	Fillet(s Solid, within Region, radius float64) (Solid, error)

	// IsEmpty reports whether the solid contains no material. Boolean
	// results are checked with this before being passed downstream.
	IsEmpty(s Solid) bool

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
