package enclosure

// Placement tags where on the footprint a screw point sits.
type Placement int

const (
	PlaceCorner Placement = iota
	PlaceMiddleLength // on the two width-side walls, halfway along Y
	PlaceMiddleWidth  // on the two length-side walls, halfway along X
)

var placementNames = map[Placement]string{
	PlaceCorner:       "corner",
	PlaceMiddleLength: "middle-length",
	PlaceMiddleWidth:  "middle-width",
}

func (p Placement) String() string { return placementNames[p] }

// ScrewPoint is a screw axis position on the enclosure footprint.
// Computed once by Layout and consumed read-only by every downstream
// builder.
type ScrewPoint struct {
	X, Y     float64
	Place    Placement
	IsCorner bool
}

// Layout computes the ordered screw point set for a validated spec.
// Positions are a deterministic function of the spec alone: corners in
// the order (+,+), (+,-), (-,+), (-,-), then middle-length points
// (-,0), (+,0), then middle-width points (0,-), (0,+). The set is empty
// when every screw toggle is off; the shell is then built without
// bosses. Points are unique by position.
func Layout(spec *Spec) []ScrewPoint {
	sx := spec.Dim.ScrewInsetX
	sy := spec.Dim.ScrewInsetY

	var points []ScrewPoint
	add := func(pt ScrewPoint) {
		for _, p := range points {
			if p.X == pt.X && p.Y == pt.Y {
				return
			}
		}
		points = append(points, pt)
	}

	if spec.CornerScrews {
		add(ScrewPoint{X: sx, Y: sy, Place: PlaceCorner, IsCorner: true})
		add(ScrewPoint{X: sx, Y: -sy, Place: PlaceCorner, IsCorner: true})
		add(ScrewPoint{X: -sx, Y: sy, Place: PlaceCorner, IsCorner: true})
		add(ScrewPoint{X: -sx, Y: -sy, Place: PlaceCorner, IsCorner: true})
	}
	if spec.MiddleLengthScrews {
		add(ScrewPoint{X: -sx, Y: 0, Place: PlaceMiddleLength})
		add(ScrewPoint{X: sx, Y: 0, Place: PlaceMiddleLength})
	}
	if spec.MiddleWidthScrews {
		add(ScrewPoint{X: 0, Y: -sy, Place: PlaceMiddleWidth})
		add(ScrewPoint{X: 0, Y: sy, Place: PlaceMiddleWidth})
	}
	return points
}
