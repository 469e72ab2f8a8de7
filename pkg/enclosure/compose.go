package enclosure

import (
	"github.com/sealcase/sealcase/pkg/kernel"
)

// Result holds the three output solids of one build plus the resolved
// placement data, for callers that want to report or test it.
type Result struct {
	Box    kernel.Solid
	Lid    kernel.Solid
	Gasket kernel.Solid

	Points  []ScrewPoint
	Pockets []NutPocket
	Profile GasketProfile
	Dim     Dimensions
}

// builder carries the per-build state threaded through the pipeline
// stages. It is created by Build and discarded afterwards.
type builder struct {
	k       kernel.Kernel
	spec    *Spec
	points  []ScrewPoint
	pockets []NutPocket
	gasket  GasketProfile
}

// ensure fails the build when a boolean stage produced nothing.
func (b *builder) ensure(stage string, s kernel.Solid) error {
	if s == nil || b.k.IsEmpty(s) {
		return geoErr(stage, "operation produced an empty solid")
	}
	return nil
}

// Build runs the full pipeline for one parameter set and returns the
// box, lid and gasket solids. The stage order is fixed; two builds from
// equal parameters produce identical geometry. Any stage error aborts
// the build with no partial result.
func Build(k kernel.Kernel, p Params) (*Result, error) {
	spec, err := p.Validate()
	if err != nil {
		return nil, err
	}

	b := &builder{k: k, spec: spec}
	b.points = Layout(spec)
	b.pockets = resolveNutPockets(spec, b.points)
	b.gasket = gasketProfile(spec)

	shell, err := b.buildShell()
	if err != nil {
		return nil, err
	}
	shell, err = b.applyNutPockets(shell)
	if err != nil {
		return nil, err
	}

	box, lid, err := b.split(shell)
	if err != nil {
		return nil, err
	}

	box, err = b.cutChannel(box)
	if err != nil {
		return nil, err
	}
	lid, err = b.addPress(lid)
	if err != nil {
		return nil, err
	}
	gasket, err := b.buildGasket()
	if err != nil {
		return nil, err
	}

	box, err = b.addMountHolders(box)
	if err != nil {
		return nil, err
	}

	box, lid, err = b.applyCapFillets(box, lid)
	if err != nil {
		return nil, err
	}

	return &Result{
		Box:     box,
		Lid:     lid,
		Gasket:  gasket,
		Points:  b.points,
		Pockets: b.pockets,
		Profile: b.gasket,
		Dim:     spec.Dim,
	}, nil
}

// applyCapFillets rounds the outside bottom edges of the box and the
// outside top edges of the lid. The rounding is restricted to a band
// near the cap face so the mating rims at the split stay sharp.
func (b *builder) applyCapFillets(box, lid kernel.Solid) (kernel.Solid, kernel.Solid, error) {
	d := b.spec.Dim

	if b.spec.FilletBottom {
		min, max := box.BoundingBox()
		band := kernel.Region{
			Min: [3]float64{min[0] - 1, min[1] - 1, min[2] - 1},
			Max: [3]float64{max[0] + 1, max[1] + 1, min[2] + 2*d.CapFillet},
		}
		rounded, err := b.k.Round(box, band, d.CapFillet)
		if err != nil {
			return nil, nil, geoErr("cap fillet", "box bottom: %v", err)
		}
		box = rounded
	}

	if b.spec.FilletTop {
		min, max := lid.BoundingBox()
		band := kernel.Region{
			Min: [3]float64{min[0] - 1, min[1] - 1, max[2] - 2*d.CapFillet},
			Max: [3]float64{max[0] + 1, max[1] + 1, max[2] + 1},
		}
		// Slightly under the bottom radius so the countersink rims
		// survive the rounding pass.
		rounded, err := b.k.Round(lid, band, d.CapFillet-1e-2)
		if err != nil {
			return nil, nil, geoErr("cap fillet", "lid top: %v", err)
		}
		lid = rounded
	}

	if err := b.ensure("cap fillet", box); err != nil {
		return nil, nil, err
	}
	if err := b.ensure("cap fillet", lid); err != nil {
		return nil, nil, err
	}
	return box, lid, nil
}
