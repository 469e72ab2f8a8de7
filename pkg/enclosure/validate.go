package enclosure

import "math"

// Spec is the validated, clearance-adjusted parameter set plus the
// derived dimensions. It is created once per build request and treated
// as read-only by every pipeline stage.
type Spec struct {
	Params // adjusted copy of the validated input

	Dim Dimensions
}

// Validate checks the raw parameters, applies hardware clearances and
// the actual-inner-dimension inflation rule, and derives the dimension
// record. It fails with a ValidationError before any geometry is built.
func (p Params) Validate() (*Spec, error) {
	if err := p.checkRaw(); err != nil {
		return nil, err
	}

	// Clearance adjustment: pockets and bores are cut slightly larger
	// than the hardware they accept.
	a := p
	a.SquareNutWidth += nutClearance
	a.SquareNutHeight += nutClearance
	a.ScrewHeadDiameter += headClearance
	a.ScrewTotalLength += screwLengthClearance

	boss := bossRadius(a)

	// With screws inside the box the bosses eat into the cavity. When
	// the caller asked for actual inner dimensions, grow the cavity so
	// the usable space between bosses matches the request exactly.
	if a.ScrewLocation == ScrewInsideBox {
		if (a.CornerScrews || a.MiddleLengthScrews) && a.ActualInnerWidth {
			a.InnerWidth += 2 * (2*boss - wallThickness)
		}
		if (a.CornerScrews || a.MiddleWidthScrews) && a.ActualInnerLength {
			a.InnerLength += 2 * (2*boss - wallThickness)
		}
	}

	// Outside middle screw columns widen the footprint the mount
	// holders must clear.
	if a.MountHolders && a.MiddleWidthScrews && a.ScrewLocation == ScrewOutsideBox {
		if min := math.Ceil(boss * 4); a.MountHolderLength < min {
			a.MountHolderLength = min
		}
	}

	dim := deriveDimensions(a)

	if a.CutTop >= dim.OuterHeight {
		return nil, ValidationError{
			Field:   "cut_top",
			Message: "split height must lie strictly inside the outer height",
		}
	}
	if a.ScrewLocation == ScrewOutsideBox && a.MountHolders && a.CornerScrews && p.InnerWidth < 31.0 {
		return nil, ValidationError{
			Field:   "box_inner_width",
			Message: "must be at least 31.0 when mount holders are enabled and screws sit outside the box",
		}
	}

	return &Spec{Params: a, Dim: dim}, nil
}

// checkRaw validates the caller-supplied values before any adjustment.
func (p Params) checkRaw() error {
	type check struct {
		field string
		v     float64
	}
	positive := []check{
		{"box_inner_width", p.InnerWidth},
		{"box_inner_length", p.InnerLength},
		{"box_inner_height", p.InnerHeight},
		{"cut_top", p.CutTop},
		{"screw_hole_diameter", p.ScrewHoleDiameter},
		{"screw_head_diameter", p.ScrewHeadDiameter},
		{"screw_total_length", p.ScrewTotalLength},
		{"gasket_height", p.GasketHeight},
		{"gasket_width", p.GasketWidth},
		{"gasket_spacing", p.GasketSpacing},
		{"layer_height", p.LayerHeight},
	}
	if p.ScrewType == WithSquareNut {
		positive = append(positive,
			check{"square_nut_width", p.SquareNutWidth},
			check{"square_nut_height", p.SquareNutHeight},
		)
	}
	if p.MountHolders {
		positive = append(positive,
			check{"mount_holder_length", p.MountHolderLength},
			check{"mount_holders_screw_hole_diameter", p.MountHolderHoleDiameter},
			check{"mount_holders_head_screw_diameter", p.MountHolderHeadDiameter},
		)
	}
	for _, c := range positive {
		if c.v <= 0 {
			return ValidationError{Field: c.field, Message: "must be positive"}
		}
	}

	if p.ScrewHoleDiameter >= p.ScrewHeadDiameter {
		return ValidationError{
			Field:   "screw_hole_diameter",
			Message: "must be smaller than screw_head_diameter",
		}
	}
	if p.ScrewHoleDiameter < 2.0 || p.ScrewHoleDiameter > 6.0 {
		return ValidationError{
			Field:   "screw_hole_diameter",
			Message: "must be between 2.0 and 6.0",
		}
	}
	if p.InnerWidth > p.InnerLength {
		return ValidationError{
			Field:   "box_inner_width",
			Message: "must be smaller than or equal to box_inner_length",
		}
	}
	if p.GasketCompression <= 0 || p.GasketCompression >= 1 {
		return ValidationError{
			Field:   "gasket_compression",
			Message: "must be strictly between 0 and 1",
		}
	}
	if p.MountHolders && p.MountHolderHoleDiameter >= p.MountHolderHeadDiameter {
		return ValidationError{
			Field:   "mount_holders_screw_hole_diameter",
			Message: "must be smaller than mount_holders_head_screw_diameter",
		}
	}
	return nil
}
