package enclosure

import (
	"math"

	"github.com/sealcase/sealcase/pkg/kernel"
)

// addMountHolders extends the box base with a mounting plate whose tabs
// stick out past the short walls, and drills one countersunk mounting
// hole through each tab. No-op when mount holders are disabled.
func (b *builder) addMountHolders(box kernel.Solid) (kernel.Solid, error) {
	if !b.spec.MountHolders {
		return box, nil
	}
	d := b.spec.Dim

	round := 0.0
	if b.spec.MountHolderFillet {
		round = d.MountFillet
	}
	plateProfile, err := b.k.Rectangle(d.OuterWidth/2, d.MountTotalLength, round)
	if err != nil {
		return nil, geoErr("mount", "plate profile: %v", err)
	}
	plate, err := b.k.Extrude(plateProfile, d.BaseThickness)
	if err != nil {
		return nil, geoErr("mount", "plate: %v", err)
	}
	box = b.k.Union(box, plate)

	holeR := b.spec.MountHolderHoleDiameter / 2
	headR := b.spec.MountHolderHeadDiameter / 2
	coneH := (headR - holeR) / math.Tan(countersinkAngle/2*math.Pi/180)

	for _, y := range []float64{-d.MountHoleSpread / 2, d.MountHoleSpread / 2} {
		bore, err := b.k.Cylinder(d.BaseThickness, holeR)
		if err != nil {
			return nil, geoErr("mount", "holder bore: %v", err)
		}
		box = b.k.Difference(box, b.k.Translate(bore, 0, y, 0))

		// Head recess opening at the plate top. The cone may reach past
		// the underside for stubby head angles; only the in-plate part
		// removes material.
		cone, err := b.k.Cone(coneH, holeR, headR)
		if err != nil {
			return nil, geoErr("mount", "holder countersink: %v", err)
		}
		box = b.k.Difference(box, b.k.Translate(cone, 0, y, d.BaseThickness-coneH))
	}

	if err := b.ensure("mount", box); err != nil {
		return nil, err
	}
	return box, nil
}
