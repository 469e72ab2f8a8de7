package enclosure

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sealcase/sealcase/pkg/kernel/sdfx"
)

// repParams returns the parameter set of a typical controller enclosure,
// used as the representative build throughout these tests.
func repParams() Params {
	p := DefaultParams()
	p.InnerWidth = 170
	p.InnerLength = 240
	p.InnerHeight = 31
	return p
}

func TestBuildProducesAllParts(t *testing.T) {
	k := &fakeKernel{}
	result, err := Build(k, repParams())
	require.NoError(t, err)
	require.NotNil(t, result.Box)
	require.NotNil(t, result.Lid)
	require.NotNil(t, result.Gasket)
	require.Len(t, result.Points, 4, "corner screws give four points")
	require.Nil(t, result.Pockets, "wood screws need no nut pockets")
	require.Equal(t, 176.0, result.Dim.OuterWidth)
	require.Equal(t, 246.0, result.Dim.OuterLength)
	require.Equal(t, 35.0, result.Dim.OuterHeight)
}

func TestBuildValidatesBeforeGeometry(t *testing.T) {
	p := repParams()
	p.InnerWidth = -5
	k := &fakeKernel{}

	_, err := Build(k, p)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "box_inner_width", verr.Field)
	require.Empty(t, k.ops, "no kernel operation may run for invalid parameters")
}

func TestBuildCutPlaneConflict(t *testing.T) {
	p := repParams()
	// Outer height 20, adjusted screw reach 17: the bore bottom lands
	// 2mm below the split, thinner than the wall.
	p.InnerHeight = 16

	_, err := Build(&fakeKernel{}, p)
	var gerr GeometryError
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, "shell", gerr.Stage)
	require.Contains(t, gerr.Message, "cut plane conflicts")
}

func TestBuildScrewPiercesBase(t *testing.T) {
	p := repParams()
	// Outer height 16 is shorter than the adjusted screw reach of 17.
	p.InnerHeight = 12

	_, err := Build(&fakeKernel{}, p)
	var gerr GeometryError
	require.ErrorAs(t, err, &gerr)
	require.Contains(t, gerr.Message, "pierces the base")
}

func TestBuildChannelDepthConflict(t *testing.T) {
	p := repParams()
	// Channel depth is twice the gasket height; 6mm does not fit below
	// a 5mm split.
	p.GasketHeight = 3.0

	_, err := Build(&fakeKernel{}, p)
	var gerr GeometryError
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, "gasket", gerr.Stage)
}

func TestBuildPropagatesKernelErrors(t *testing.T) {
	k := &fakeKernel{failOp: "fillet"}
	_, err := Build(k, repParams())
	var gerr GeometryError
	require.ErrorAs(t, err, &gerr)
	require.Contains(t, gerr.Message, "forced fillet failure")
}

func TestBuildEmptyScrewSet(t *testing.T) {
	p := repParams()
	p.CornerScrews = false
	p.MountHolders = false

	k := &fakeKernel{}
	result, err := Build(k, p)
	require.NoError(t, err)
	require.Empty(t, result.Points)
	require.Zero(t, k.count("cone"), "no screws and no mount holders means no countersinks")
	require.Zero(t, k.count("cylinder"), "no screws means no bosses or bores")
}

func TestBuildDeterministicOperationSequence(t *testing.T) {
	k1 := &fakeKernel{}
	k2 := &fakeKernel{}
	_, err := Build(k1, repParams())
	require.NoError(t, err)
	_, err = Build(k2, repParams())
	require.NoError(t, err)
	require.Equal(t, k1.ops, k2.ops, "equal parameters must issue identical operations")
}

func TestBuildNutPocketsResolved(t *testing.T) {
	p := repParams()
	p.ScrewType = WithSquareNut

	result, err := Build(&fakeKernel{}, p)
	require.NoError(t, err)
	require.Len(t, result.Pockets, 4)
	for _, np := range result.Pockets {
		require.Equal(t, p.LayerHeight, np.Ceiling, "ADD_CEILING plate is one layer tall")
		require.InDelta(t, np.Top-np.Height, np.Floor, 1e-9)
		require.Equal(t, 5.5+nutClearance, np.Width)
	}
}

func TestBuildNoPartialResultOnError(t *testing.T) {
	p := repParams()
	p.GasketHeight = 3.0 // fails at the gasket stage, after the split

	result, err := Build(&fakeKernel{}, p)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestBuildEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping sdf evaluation in short mode")
	}
	k := sdfx.New()
	k.MeshCells = 32

	p := repParams()
	result, err := Build(k, p)
	require.NoError(t, err)

	_, boxMax := result.Box.BoundingBox()
	require.InDelta(t, p.CutTop, boxMax[2], 1e-6, "box must end at the split plane")

	lidMin, lidMax := result.Lid.BoundingBox()
	require.InDelta(t, result.Dim.OuterHeight, lidMax[2], 1e-6)
	require.Less(t, lidMin[2], p.CutTop, "press ridge reaches below the split")
	pressBottom := p.CutTop - p.GasketHeight*(1+p.GasketCompression)
	require.InDelta(t, pressBottom, lidMin[2], 1e-6)

	gMin, gMax := result.Gasket.BoundingBox()
	require.InDelta(t, p.GasketHeight, gMax[2]-gMin[2], 1e-6, "gasket prints at nominal height")
	require.InDelta(t, result.Profile.OuterWidth, gMax[0]-gMin[0], 1e-6)

	require.False(t, k.IsEmpty(result.Box))
	require.False(t, k.IsEmpty(result.Lid))
	require.False(t, k.IsEmpty(result.Gasket))
}

func TestBuildSmallCase(t *testing.T) {
	p := DefaultParams()
	p.InnerWidth = 31
	p.InnerLength = 71
	p.InnerHeight = 31

	result, err := Build(&fakeKernel{}, p)
	require.NoError(t, err)
	require.Len(t, result.Points, 4)

	// cut_top partitions the shell exactly.
	_, boxMax := result.Box.BoundingBox()
	lidMin, lidMax := result.Lid.BoundingBox()
	require.InDelta(t, p.CutTop, boxMax[2], 1e-9)
	require.InDelta(t, result.Dim.OuterHeight, lidMax[2], 1e-9)
	require.LessOrEqual(t, lidMin[2], p.CutTop)
}

func TestBuildEndToEndDeterministicPoints(t *testing.T) {
	k := &fakeKernel{}
	a, err := Build(k, repParams())
	require.NoError(t, err)
	b, err := Build(&fakeKernel{}, repParams())
	require.NoError(t, err)
	require.Equal(t, a.Points, b.Points)
	require.Equal(t, a.Dim, b.Dim)
}

func TestGeometryErrorMessage(t *testing.T) {
	err := geoErr("split", "box side is empty")
	require.EqualError(t, err, "geometry failure in split: box side is empty")
	var gerr GeometryError
	require.True(t, errors.As(err, &gerr))
}

func TestEnsureFlagsEmptySolid(t *testing.T) {
	k := &fakeKernel{}
	b := &builder{k: k}
	err := b.ensure("split", &fakeSolid{empty: true})
	var gerr GeometryError
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, "split", gerr.Stage)

	require.NoError(t, b.ensure("split", &fakeSolid{max: [3]float64{1, 1, 1}}))
}

// The derived outer dimensions must place the gasket channel fully on
// the wall ring: its outer footprint inside the outer face, its inner
// footprint outside the cavity for the default tolerances.
func TestChannelSitsOnWall(t *testing.T) {
	spec, err := repParams().Validate()
	require.NoError(t, err)
	g := gasketProfile(spec)

	require.Less(t, g.SlotOuterWidth, spec.Dim.OuterWidth)
	require.Greater(t, g.SlotInnerWidth, spec.Dim.InnerWidth)
	require.True(t, math.Abs(g.SlotOuterWidth-g.SlotInnerWidth-2*g.SlotWidth) < 1e-9)
}
