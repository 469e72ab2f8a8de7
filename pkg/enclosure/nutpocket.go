package enclosure

import (
	"github.com/sealcase/sealcase/pkg/kernel"
)

// NutPocket is one resolved square nut cavity on a screw axis. All Z
// values are absolute, measured from the base plane.
type NutPocket struct {
	Point ScrewPoint

	// Width is the clearance-adjusted nut width; the pocket is square in
	// plan. Height is the clearance-adjusted nut thickness.
	Width  float64
	Height float64

	// Floor and Top bound the cavity along Z.
	Floor float64
	Top   float64

	// Ceiling is the thickness of the printed bridge layer closing the
	// pocket, zero for the cut-rect-spaces policy.
	Ceiling float64

	Policy NutWorkaround
}

// resolveNutPockets places one pocket per screw point when the fastener
// style calls for square nuts. The pocket ceiling sits a few millimeters
// below the full screw reach so the thread engages past the nut.
func resolveNutPockets(spec *Spec, points []ScrewPoint) []NutPocket {
	if spec.ScrewType != WithSquareNut {
		return nil
	}

	pockets := make([]NutPocket, 0, len(points))
	for _, pt := range points {
		np := NutPocket{
			Point:  pt,
			Width:  spec.SquareNutWidth,
			Height: spec.SquareNutHeight,
			Top:    spec.Dim.NutPocketTop,
			Policy: spec.NutWorkaround,
		}
		np.Floor = np.Top - np.Height
		if np.Policy == NutAddCeiling {
			np.Ceiling = spec.LayerHeight
		}
		pockets = append(pockets, np)
	}
	return pockets
}

// applyNutPockets cuts every resolved pocket into the unsplit shell and
// applies the selected printability workaround on top of it.
//
// CUT_RECT_SPACES leaves the pocket open upward through two stepped
// bridging slots, one layer tall each, so the slicer can bridge the bore
// without support. ADD_CEILING instead closes the pocket with a
// single-layer plate that the nut presses against; it is added after the
// bores are cut, so it deliberately blocks the thread bore for one layer
// and the screw cuts through it on first assembly.
func (b *builder) applyNutPockets(shell kernel.Solid) (kernel.Solid, error) {
	if len(b.pockets) == 0 {
		return shell, nil
	}
	d := b.spec.Dim

	for _, np := range b.pockets {
		if np.Floor <= d.BaseThickness {
			return nil, geoErr("nut pocket", "pocket floor at %.2f reaches into the base plate", np.Floor)
		}

		pocket, err := b.k.Box(np.Width, np.Width, np.Height)
		if err != nil {
			return nil, geoErr("nut pocket", "pocket cavity: %v", err)
		}
		shell = b.k.Difference(shell, b.k.Translate(pocket, np.Point.X, np.Point.Y, np.Floor))

		switch np.Policy {
		case NutCutRectSpaces:
			holeD := b.spec.ScrewHoleDiameter
			layer := b.spec.LayerHeight

			wide, err := b.k.Box(np.Width, holeD, layer)
			if err != nil {
				return nil, geoErr("nut pocket", "bridging slot: %v", err)
			}
			shell = b.k.Difference(shell, b.k.Translate(wide, np.Point.X, np.Point.Y, np.Top))

			narrow, err := b.k.Box(holeD, holeD, layer)
			if err != nil {
				return nil, geoErr("nut pocket", "bridging slot: %v", err)
			}
			shell = b.k.Difference(shell, b.k.Translate(narrow, np.Point.X, np.Point.Y, np.Top+layer))

		case NutAddCeiling:
			plate, err := b.k.Box(np.Width, np.Width, np.Ceiling)
			if err != nil {
				return nil, geoErr("nut pocket", "ceiling plate: %v", err)
			}
			shell = b.k.Union(shell, b.k.Translate(plate, np.Point.X, np.Point.Y, np.Top))
		}
	}

	if err := b.ensure("nut pocket", shell); err != nil {
		return nil, err
	}
	return shell, nil
}
