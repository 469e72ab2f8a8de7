package enclosure

import (
	"math"

	"github.com/sealcase/sealcase/pkg/kernel"
)

// buildShell produces the unsplit outer shell: a hollow rounded prism
// with a boss cylinder and screw bores at every screw point. Boss blend
// fillets are applied here, before any subtractive feature near the rim,
// so later cuts are never rounded over.
func (b *builder) buildShell() (kernel.Solid, error) {
	d := b.spec.Dim

	outer, err := b.k.Rectangle(d.OuterWidth, d.OuterLength, d.OuterEdgeFillet)
	if err != nil {
		return nil, geoErr("shell", "outer profile: %v", err)
	}
	shell, err := b.k.Extrude(outer, d.OuterHeight)
	if err != nil {
		return nil, geoErr("shell", "outer prism: %v", err)
	}

	cavityProfile, err := b.k.Rectangle(d.InnerWidth, d.InnerLength, d.InnerFillet)
	if err != nil {
		return nil, geoErr("shell", "cavity profile: %v", err)
	}
	cavity, err := b.k.Extrude(cavityProfile, d.InnerHeight)
	if err != nil {
		return nil, geoErr("shell", "cavity: %v", err)
	}
	shell = b.k.Difference(shell, b.k.Translate(cavity, 0, 0, d.BaseThickness))

	// Boss cylinders run the full height; the split separates them into
	// the box and lid halves later.
	for _, pt := range b.points {
		boss, err := b.k.Cylinder(d.OuterHeight, d.BossRadius)
		if err != nil {
			return nil, geoErr("shell", "screw boss: %v", err)
		}
		shell = b.k.Union(shell, b.k.Translate(boss, pt.X, pt.Y, 0))
	}

	// Blend each boss into the wall it touches.
	for _, pt := range b.points {
		region := kernel.Region{
			Min: [3]float64{pt.X - 2*d.BossRadius, pt.Y - 2*d.BossRadius, d.CapFillet},
			Max: [3]float64{pt.X + 2*d.BossRadius, pt.Y + 2*d.BossRadius, d.OuterHeight - d.CapFillet},
		}
		shell, err = b.k.Fillet(shell, region, d.BossFillet)
		if err != nil {
			return nil, geoErr("shell", "boss fillet: %v", err)
		}
	}

	if len(b.points) > 0 {
		if err := b.checkCutPlane(); err != nil {
			return nil, err
		}
		for _, pt := range b.points {
			shell, err = b.drillScrew(shell, pt)
			if err != nil {
				return nil, err
			}
		}
	}

	if err := b.ensure("shell", shell); err != nil {
		return nil, err
	}
	return shell, nil
}

// checkCutPlane verifies the split height against the screw bores. A
// bore stub shorter than the wall thickness below the cut would be an
// unsupported through-hole segment, so the spec is rejected rather than
// auto-adjusted.
func (b *builder) checkCutPlane() error {
	d := b.spec.Dim
	boreBottom := d.OuterHeight - b.spec.ScrewTotalLength
	if boreBottom <= 0 {
		return geoErr("shell", "screw bore of length %.2f pierces the base plate", b.spec.ScrewTotalLength)
	}
	if boreBottom < b.spec.CutTop && b.spec.CutTop-boreBottom < d.WallThickness {
		return geoErr("shell", "cut plane conflicts with screw bore")
	}
	return nil
}

// drillScrew cuts one screw's countersink, lid clearance bore and thread
// bore, all centered on the screw axis and measured from the top face.
func (b *builder) drillScrew(shell kernel.Solid, pt ScrewPoint) (kernel.Solid, error) {
	d := b.spec.Dim
	headR := b.spec.ScrewHeadDiameter / 2
	clearR := d.LidHoleDiameter / 2

	// Countersink recess for the screw head at the top face.
	coneH := (headR - clearR) / math.Tan(countersinkAngle/2*math.Pi/180)
	cone, err := b.k.Cone(coneH, clearR, headR)
	if err != nil {
		return nil, geoErr("shell", "countersink: %v", err)
	}
	shell = b.k.Difference(shell, b.k.Translate(cone, pt.X, pt.Y, d.OuterHeight-coneH))

	// Clearance bore through the whole lid half so the screw shank
	// never binds above the split.
	lidHeight := d.OuterHeight - b.spec.CutTop
	clearance, err := b.k.Cylinder(lidHeight, clearR)
	if err != nil {
		return nil, geoErr("shell", "clearance bore: %v", err)
	}
	shell = b.k.Difference(shell, b.k.Translate(clearance, pt.X, pt.Y, b.spec.CutTop))

	// Thread bore for the full screw reach.
	thread, err := b.k.Cylinder(b.spec.ScrewTotalLength, b.spec.ScrewHoleDiameter/2)
	if err != nil {
		return nil, geoErr("shell", "thread bore: %v", err)
	}
	shell = b.k.Difference(shell, b.k.Translate(thread, pt.X, pt.Y, d.OuterHeight-b.spec.ScrewTotalLength))

	return shell, nil
}

// split cuts the shell at the split plane. Below the cut is the box,
// above is the lid; together they partition the shell exactly.
func (b *builder) split(shell kernel.Solid) (box, lid kernel.Solid, err error) {
	d := b.spec.Dim
	min, max := shell.BoundingBox()
	w := max[0] - min[0] + 2
	l := max[1] - min[1] + 2

	lower, err := b.k.Box(w, l, b.spec.CutTop)
	if err != nil {
		return nil, nil, geoErr("split", "lower slab: %v", err)
	}
	upper, err := b.k.Box(w, l, d.OuterHeight-b.spec.CutTop)
	if err != nil {
		return nil, nil, geoErr("split", "upper slab: %v", err)
	}

	box = b.k.Intersection(shell, lower)
	lid = b.k.Intersection(shell, b.k.Translate(upper, 0, 0, b.spec.CutTop))

	if err := b.ensure("split", box); err != nil {
		return nil, nil, err
	}
	if err := b.ensure("split", lid); err != nil {
		return nil, nil, err
	}
	return box, lid, nil
}
