// Package enclosure computes the boundary-representation solids of a
// three-part water-resistant enclosure: a box, a matching lid, and a
// compressible sealing gasket. The pipeline derives all secondary
// dimensions from the inner dimensions and tolerances, solves screw
// placement, splits the shell into box and lid, carves the gasket
// channel, embeds square nuts without support material, and composes
// everything through an ordered sequence of kernel boolean operations.
package enclosure

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScrewLocation selects whether screw bosses protrude into the cavity or
// the screw columns sit outside the walls.
type ScrewLocation int

const (
	ScrewInsideBox ScrewLocation = iota
	ScrewOutsideBox
)

var screwLocationNames = map[ScrewLocation]string{
	ScrewInsideBox:  "INSIDE_BOX",
	ScrewOutsideBox: "OUTSIDE_BOX",
}

func (l ScrewLocation) String() string { return enumName(screwLocationNames[l]) }

// ParseScrewLocation converts a configuration string to a ScrewLocation.
func ParseScrewLocation(s string) (ScrewLocation, error) {
	for v, name := range screwLocationNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown screw location %q (want INSIDE_BOX or OUTSIDE_BOX)", s)
}

// UnmarshalYAML decodes a screw location from its configuration name.
func (l *ScrewLocation) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseScrewLocation(value.Value)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ScrewType selects the fastener style. WithSquareNut enables the nut
// embedding resolver.
type ScrewType int

const (
	WoodScrew ScrewType = iota
	WithSquareNut
)

var screwTypeNames = map[ScrewType]string{
	WoodScrew:     "WOOD_SCREW",
	WithSquareNut: "WITH_SQUARE_NUT",
}

func (t ScrewType) String() string { return enumName(screwTypeNames[t]) }

// ParseScrewType converts a configuration string to a ScrewType.
func ParseScrewType(s string) (ScrewType, error) {
	for v, name := range screwTypeNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown screw type %q (want WOOD_SCREW or WITH_SQUARE_NUT)", s)
}

// UnmarshalYAML decodes a screw type from its configuration name.
func (t *ScrewType) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseScrewType(value.Value)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// NutWorkaround selects how a square nut pocket is made printable
// without support material.
type NutWorkaround int

const (
	// NutCutRectSpaces leaves the pocket ceiling open with narrow
	// bridging slots beside the nut.
	NutCutRectSpaces NutWorkaround = iota
	// NutAddCeiling closes the pocket with a single-layer ceiling that
	// prints as a short bridge.
	NutAddCeiling
)

var nutWorkaroundNames = map[NutWorkaround]string{
	NutCutRectSpaces: "CUT_RECT_SPACES",
	NutAddCeiling:    "ADD_CEILING",
}

func (w NutWorkaround) String() string { return enumName(nutWorkaroundNames[w]) }

// ParseNutWorkaround converts a configuration string to a NutWorkaround.
func ParseNutWorkaround(s string) (NutWorkaround, error) {
	for v, name := range nutWorkaroundNames {
		if strings.EqualFold(s, name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown nut workaround %q (want CUT_RECT_SPACES or ADD_CEILING)", s)
}

// UnmarshalYAML decodes a nut workaround policy from its configuration name.
func (w *NutWorkaround) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseNutWorkaround(value.Value)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func enumName(name string) string {
	if name == "" {
		return "UNKNOWN"
	}
	return name
}

// Params is the raw declarative parameter set for one enclosure, in
// millimeters. Zero value is not usable; start from DefaultParams and
// override. Validate produces the immutable Spec consumed by the
// pipeline; Params itself is never read by geometry stages.
type Params struct {
	// Inner cavity dimensions.
	InnerWidth  float64 `yaml:"box_inner_width"`  // X
	InnerLength float64 `yaml:"box_inner_length"` // Y
	InnerHeight float64 `yaml:"box_inner_height"` // Z

	// When screws are mounted inside the box, grow the requested inner
	// dimensions so the usable cavity matches them exactly.
	ActualInnerWidth  bool `yaml:"actual_inner_width"`
	ActualInnerLength bool `yaml:"actual_inner_length"`

	// Height of the split plane above the base. Below the cut is the
	// box, above is the lid.
	CutTop float64 `yaml:"cut_top"`

	// Screw dimensions (actual hardware sizes; clearances are added
	// during validation).
	ScrewHoleDiameter float64       `yaml:"screw_hole_diameter"`
	ScrewHeadDiameter float64       `yaml:"screw_head_diameter"`
	ScrewTotalLength  float64       `yaml:"screw_total_length"`
	ScrewLocation     ScrewLocation `yaml:"screw_location"`
	ScrewType         ScrewType     `yaml:"screw_type"`

	// Screw placement toggles.
	CornerScrews       bool `yaml:"corner_screws"`
	MiddleLengthScrews bool `yaml:"middle_length_screws"`
	MiddleWidthScrews  bool `yaml:"middle_width_screws"`

	// Square nut dimensions (actual hardware sizes).
	SquareNutWidth  float64       `yaml:"square_nut_width"`
	SquareNutHeight float64       `yaml:"square_nut_height"`
	NutWorkaround   NutWorkaround `yaml:"nut_wa_type"`

	// Gasket cross-section and tolerances.
	GasketHeight      float64 `yaml:"gasket_height"`
	GasketWidth       float64 `yaml:"gasket_width"`
	GasketSpacing     float64 `yaml:"gasket_spacing"`
	GasketCompression float64 `yaml:"gasket_compression"`

	// External mounting tabs.
	MountHolders            bool    `yaml:"mount_holders"`
	MountHolderLength       float64 `yaml:"mount_holder_length"`
	MountHolderHoleDiameter float64 `yaml:"mount_holders_screw_hole_diameter"`
	MountHolderHeadDiameter float64 `yaml:"mount_holders_head_screw_diameter"`
	MountHolderFillet       bool    `yaml:"mount_holders_fillet"`

	// Printer layer height, used by the square nut ceiling trick.
	LayerHeight float64 `yaml:"layer_height"`

	FilletBottom bool `yaml:"fillet_bottom"`
	FilletTop    bool `yaml:"fillet_top"`
}

// DefaultParams returns the parameter set for a typical small outdoor
// enclosure. Inner dimensions must still be set by the caller.
func DefaultParams() Params {
	return Params{
		ActualInnerWidth:  true,
		ActualInnerLength: true,

		CutTop: 5.0,

		ScrewHoleDiameter: 3.0 + 0.3,
		ScrewHeadDiameter: 6.0,
		ScrewTotalLength:  16.0,
		ScrewLocation:     ScrewOutsideBox,
		ScrewType:         WoodScrew,

		CornerScrews:       true,
		MiddleLengthScrews: false,
		MiddleWidthScrews:  false,

		SquareNutWidth:  5.5,
		SquareNutHeight: 1.8,
		NutWorkaround:   NutAddCeiling,

		GasketHeight:      1.6,
		GasketWidth:       1.2,
		GasketSpacing:     0.15,
		GasketCompression: 0.2,

		MountHolders:            true,
		MountHolderLength:       15.0,
		MountHolderHoleDiameter: 5.0,
		MountHolderHeadDiameter: 9.0,
		MountHolderFillet:       true,

		LayerHeight: 0.28,

		FilletBottom: true,
		FilletTop:    true,
	}
}

// DecodeParams parses a YAML parameter file over the defaults, so a file
// only needs to list the values it changes.
func DecodeParams(data []byte) (Params, error) {
	p := DefaultParams()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("decode parameters: %w", err)
	}
	return p, nil
}
