package enclosure

import "math"

// Fixed design constants shared by every enclosure. These mirror proven
// print settings and are not part of the declarative parameter surface.
const (
	wallThickness = 3.0
	baseThickness = 2.0 // bottom and lid plate thickness

	bossFillet      = 2.0 + 1e-3
	innerFillet     = 2.0 + 2e-3
	outerEdgeFillet = 2.0 + 1e-3
	capFillet       = 1.0
	gasketFillet    = 2.0 + 4e-3
	mountFillet     = 3.0

	// Clearances added to hardware dimensions during validation.
	nutClearance         = 0.4
	headClearance        = 0.5
	screwLengthClearance = 1.0

	// Included countersink angle in degrees.
	countersinkAngle = 82.0
)

// Dimensions is the read-only derived-dimension record threaded through
// every pipeline stage. It is computed once per build from the adjusted
// parameters; stages never recompute or mutate it.
type Dimensions struct {
	WallThickness float64
	BaseThickness float64

	// Adjusted cavity dimensions (after actual_inner_* inflation).
	InnerWidth  float64
	InnerLength float64
	InnerHeight float64

	OuterWidth  float64
	OuterLength float64
	OuterHeight float64

	// Screw boss cylinder radius and the corner margins: the absolute X
	// and Y coordinates of every screw axis.
	BossRadius  float64
	ScrewInsetX float64
	ScrewInsetY float64

	// Lid clearance bore for the screw shank.
	LidHoleDiameter float64

	// Z of the nut pocket ceiling plane, measured from the base.
	NutPocketTop float64

	// Mount holder plate extents and hole placement.
	MountTotalLength float64
	MountHoleSpread  float64

	BossFillet      float64
	InnerFillet     float64
	OuterEdgeFillet float64
	CapFillet       float64
	GasketFillet    float64
	MountFillet     float64
}

// bossRadius returns the screw cylinder radius for the adjusted
// parameters. A square nut must fit inside the boss at any rotation, so
// its diagonal bounds the radius from below.
func bossRadius(a Params) float64 {
	r := math.Max(a.ScrewHoleDiameter, 3.0)
	if a.ScrewType == WithSquareNut {
		r = math.Max(r, a.SquareNutWidth*math.Sqrt2/2)
	}
	return r + 1.6
}

// deriveDimensions computes the Dimensions record from the adjusted
// parameters. Pure function of its argument.
func deriveDimensions(a Params) Dimensions {
	boss := bossRadius(a)

	d := Dimensions{
		WallThickness: wallThickness,
		BaseThickness: baseThickness,

		InnerWidth:  a.InnerWidth,
		InnerLength: a.InnerLength,
		InnerHeight: a.InnerHeight,

		OuterWidth:  a.InnerWidth + 2*wallThickness,
		OuterLength: a.InnerLength + 2*wallThickness,
		OuterHeight: a.InnerHeight + 2*baseThickness,

		BossRadius:      boss,
		LidHoleDiameter: a.ScrewHoleDiameter + 1.0,

		BossFillet:      bossFillet,
		InnerFillet:     innerFillet,
		OuterEdgeFillet: outerEdgeFillet,
		CapFillet:       capFillet,
		GasketFillet:    gasketFillet,
		MountFillet:     mountFillet,
	}

	switch a.ScrewLocation {
	case ScrewInsideBox:
		d.ScrewInsetX = d.InnerWidth/2 - boss + wallThickness
		d.ScrewInsetY = d.InnerLength/2 - boss + wallThickness
	case ScrewOutsideBox:
		d.ScrewInsetX = d.OuterWidth/2 + boss - wallThickness
		d.ScrewInsetY = d.OuterLength/2 + boss - wallThickness
	}

	// The nut sits a few millimeters short of the full screw reach so
	// the thread still engages past it.
	d.NutPocketTop = d.OuterHeight - (a.ScrewTotalLength - 4.0)

	d.MountTotalLength = d.OuterLength + 2*a.MountHolderLength
	spanned := d.OuterLength
	if a.MiddleWidthScrews && a.ScrewLocation == ScrewOutsideBox {
		// Middle screw columns stick out past the wall; the holder
		// holes must clear them.
		spanned = (d.ScrewInsetY + boss) * 2
	}
	d.MountHoleSpread = spanned + (d.MountTotalLength-spanned)/2

	return d
}
