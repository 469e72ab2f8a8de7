package enclosure

import (
	"github.com/sealcase/sealcase/pkg/kernel"
)

// GasketProfile captures the derived gasket geometry shared by the box
// channel, the lid press ridge and the printable gasket ring.
type GasketProfile struct {
	// Width and Height are the nominal gasket cross-section.
	Width  float64
	Height float64

	// Spacing is the lateral clearance between gasket and channel wall,
	// per side. Compression is the fraction of Height the press squeezes
	// out of the seated gasket.
	Spacing     float64
	Compression float64

	// SlotWidth is the channel cross-section width, SlotDepth its depth
	// below the split plane.
	SlotWidth float64
	SlotDepth float64

	// PressHeight is how far the lid ridge reaches down into the channel.
	// SeatHeight is the gasket height once compressed; it is always less
	// than the nominal Height for a valid compression fraction.
	PressHeight float64
	SeatHeight  float64

	// Channel ring footprint, centered on the wall midline.
	SlotOuterWidth  float64
	SlotOuterLength float64
	SlotInnerWidth  float64
	SlotInnerLength float64

	// Gasket ring footprint. The press ridge shares it.
	OuterWidth  float64
	OuterLength float64
	InnerWidth  float64
	InnerLength float64
}

// gasketProfile derives the gasket geometry from a validated spec. The
// channel straddles the wall midline and is wide enough to leave Spacing
// clearance on both sides of the seated gasket.
func gasketProfile(spec *Spec) GasketProfile {
	d := spec.Dim
	clear := 2 * spec.GasketSpacing

	g := GasketProfile{
		Width:       spec.GasketWidth,
		Height:      spec.GasketHeight,
		Spacing:     spec.GasketSpacing,
		Compression: spec.GasketCompression,
		SlotWidth:   spec.GasketWidth + clear,
		SlotDepth:   2 * spec.GasketHeight,
		PressHeight: spec.GasketHeight * (1 + spec.GasketCompression),
		SeatHeight:  spec.GasketHeight * (1 - spec.GasketCompression),
	}

	g.SlotOuterWidth = d.OuterWidth - d.WallThickness + spec.GasketWidth + clear
	g.SlotOuterLength = d.OuterLength - d.WallThickness + spec.GasketWidth + clear
	g.SlotInnerWidth = d.OuterWidth - d.WallThickness - spec.GasketWidth - clear
	g.SlotInnerLength = d.OuterLength - d.WallThickness - spec.GasketWidth - clear

	g.OuterWidth = g.SlotOuterWidth - clear
	g.OuterLength = g.SlotOuterLength - clear
	g.InnerWidth = g.SlotInnerWidth + clear
	g.InnerLength = g.SlotInnerLength + clear

	return g
}

// ring extrudes a rounded rectangular ring with its base at z=0.
func (b *builder) ring(outerW, outerL, innerW, innerL, round, height float64) (kernel.Solid, error) {
	outer, err := b.k.Rectangle(outerW, outerL, round)
	if err != nil {
		return nil, err
	}
	inner, err := b.k.Rectangle(innerW, innerL, round)
	if err != nil {
		return nil, err
	}
	return b.k.Extrude(b.k.Cutout(outer, inner), height)
}

// annulus extrudes a circular ring centered on a screw point.
func (b *builder) annulus(pt ScrewPoint, outerR, innerR, height float64) (kernel.Solid, error) {
	outer, err := b.k.Circle(outerR)
	if err != nil {
		return nil, err
	}
	inner, err := b.k.Circle(innerR)
	if err != nil {
		return nil, err
	}
	ring, err := b.k.Extrude(b.k.Cutout(outer, inner), height)
	if err != nil {
		return nil, err
	}
	return b.k.Translate(ring, pt.X, pt.Y, 0), nil
}

// bossRingRadii computes the outer and inner radii of a ring of the
// given width centered between a screw hole and its boss perimeter.
func (b *builder) bossRingRadii(width float64) (outerR, innerR float64) {
	holeR := b.spec.ScrewHoleDiameter / 2
	bossR := b.spec.Dim.BossRadius
	outerR = holeR + (bossR-holeR+width)/2
	innerR = holeR + (bossR-holeR-width)/2
	return outerR, innerR
}

// cutChannel carves the gasket channel into the box rim. With screws
// inside the box, matching annular channels ring each boss so the seal
// encircles every screw hole.
func (b *builder) cutChannel(box kernel.Solid) (kernel.Solid, error) {
	g := b.gasket
	d := b.spec.Dim
	cutTop := b.spec.CutTop

	if g.SlotDepth >= cutTop {
		return nil, geoErr("gasket", "channel depth %.2f does not fit below the split at %.2f", g.SlotDepth, cutTop)
	}

	cutter, err := b.ring(g.SlotOuterWidth, g.SlotOuterLength, g.SlotInnerWidth, g.SlotInnerLength, d.GasketFillet, g.SlotDepth)
	if err != nil {
		return nil, geoErr("gasket", "channel cutter: %v", err)
	}
	box = b.k.Difference(box, b.k.Translate(cutter, 0, 0, cutTop-g.SlotDepth))

	if b.spec.ScrewLocation == ScrewInsideBox {
		outerR, innerR := b.bossRingRadii(g.SlotWidth)
		for _, pt := range b.points {
			ring, err := b.annulus(pt, outerR, innerR, g.SlotDepth)
			if err != nil {
				return nil, geoErr("gasket", "boss channel cutter: %v", err)
			}
			box = b.k.Difference(box, b.k.Translate(ring, 0, 0, cutTop-g.SlotDepth))
		}
	}

	if err := b.ensure("gasket", box); err != nil {
		return nil, err
	}
	return box, nil
}

// addPress adds the press ridge to the lid underside. The ridge shares
// the gasket ring footprint and reaches PressHeight below the split, so
// a seated gasket is squeezed by the compression fraction when the lid
// is screwed down.
func (b *builder) addPress(lid kernel.Solid) (kernel.Solid, error) {
	g := b.gasket
	d := b.spec.Dim
	cutTop := b.spec.CutTop

	ridge, err := b.ring(g.OuterWidth, g.OuterLength, g.InnerWidth, g.InnerLength, d.GasketFillet, g.PressHeight)
	if err != nil {
		return nil, geoErr("gasket", "press ridge: %v", err)
	}
	lid = b.k.Union(lid, b.k.Translate(ridge, 0, 0, cutTop-g.PressHeight))

	if b.spec.ScrewLocation == ScrewInsideBox {
		outerR, innerR := b.bossRingRadii(g.Width)
		for _, pt := range b.points {
			ring, err := b.annulus(pt, outerR, innerR, g.PressHeight)
			if err != nil {
				return nil, geoErr("gasket", "boss press ridge: %v", err)
			}
			lid = b.k.Union(lid, b.k.Translate(ring, 0, 0, cutTop-g.PressHeight))
		}
	}

	if err := b.ensure("gasket", lid); err != nil {
		return nil, err
	}
	return lid, nil
}

// buildGasket produces the printable gasket ring at the origin with its
// base on z=0, at the nominal uncompressed height.
func (b *builder) buildGasket() (kernel.Solid, error) {
	g := b.gasket
	d := b.spec.Dim

	gasket, err := b.ring(g.OuterWidth, g.OuterLength, g.InnerWidth, g.InnerLength, d.GasketFillet, g.Height)
	if err != nil {
		return nil, geoErr("gasket", "gasket ring: %v", err)
	}

	if b.spec.ScrewLocation == ScrewInsideBox {
		outerR, innerR := b.bossRingRadii(g.Width)
		for _, pt := range b.points {
			ring, err := b.annulus(pt, outerR, innerR, g.Height)
			if err != nil {
				return nil, geoErr("gasket", "boss gasket ring: %v", err)
			}
			gasket = b.k.Union(gasket, ring)
		}
	}

	if err := b.ensure("gasket", gasket); err != nil {
		return nil, err
	}
	return gasket, nil
}
