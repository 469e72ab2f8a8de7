package enclosure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.Equal(t, 5.0, p.CutTop)
	require.Equal(t, 3.3, p.ScrewHoleDiameter)
	require.Equal(t, ScrewOutsideBox, p.ScrewLocation)
	require.Equal(t, WoodScrew, p.ScrewType)
	require.Equal(t, NutAddCeiling, p.NutWorkaround)
	require.True(t, p.CornerScrews)
	require.False(t, p.MiddleLengthScrews)
	require.Equal(t, 0.2, p.GasketCompression)
	require.True(t, p.MountHolders)
	require.Zero(t, p.InnerWidth, "inner dimensions have no default")
}

func TestDecodeParamsOverridesDefaults(t *testing.T) {
	data := []byte(`
box_inner_width: 31
box_inner_length: 50
box_inner_height: 20
screw_location: INSIDE_BOX
screw_type: WITH_SQUARE_NUT
nut_wa_type: CUT_RECT_SPACES
mount_holders: false
`)
	p, err := DecodeParams(data)
	require.NoError(t, err)
	require.Equal(t, 31.0, p.InnerWidth)
	require.Equal(t, ScrewInsideBox, p.ScrewLocation)
	require.Equal(t, WithSquareNut, p.ScrewType)
	require.Equal(t, NutCutRectSpaces, p.NutWorkaround)
	require.False(t, p.MountHolders)
	// Untouched keys keep their defaults.
	require.Equal(t, 5.0, p.CutTop)
	require.Equal(t, 1.6, p.GasketHeight)
}

func TestDecodeParamsRejectsBadEnum(t *testing.T) {
	_, err := DecodeParams([]byte("screw_location: SIDEWAYS"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "SIDEWAYS")
}

func TestDecodeParamsRejectsBadYAML(t *testing.T) {
	_, err := DecodeParams([]byte("box_inner_width: [not a number"))
	require.Error(t, err)
}

func TestEnumRoundTrips(t *testing.T) {
	tests := []struct {
		name string
		str  string
	}{
		{"location inside", "INSIDE_BOX"},
		{"location outside", "OUTSIDE_BOX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseScrewLocation(tt.str)
			require.NoError(t, err)
			require.Equal(t, tt.str, v.String())
		})
	}

	st, err := ParseScrewType("with_square_nut") // case-insensitive
	require.NoError(t, err)
	require.Equal(t, WithSquareNut, st)

	wa, err := ParseNutWorkaround("ADD_CEILING")
	require.NoError(t, err)
	require.Equal(t, NutAddCeiling, wa)

	_, err = ParseScrewType("SHEET_METAL")
	require.Error(t, err)
}
