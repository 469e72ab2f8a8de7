package enclosure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGasketProfileDerivation(t *testing.T) {
	spec := mustSpec(t, repParams())
	g := gasketProfile(spec)

	require.Equal(t, 1.2, g.Width)
	require.Equal(t, 1.6, g.Height)
	require.InDelta(t, 1.2+2*0.15, g.SlotWidth, 1e-9, "slot leaves spacing per side")
	require.InDelta(t, 3.2, g.SlotDepth, 1e-9, "channel is twice the gasket height")
	require.InDelta(t, 1.6*1.2, g.PressHeight, 1e-9)
	require.InDelta(t, 1.6*0.8, g.SeatHeight, 1e-9)
	require.Less(t, g.SeatHeight, g.Height, "compression must reduce the seated height")
}

func TestGasketRingCenteredInSlot(t *testing.T) {
	spec := mustSpec(t, repParams())
	g := gasketProfile(spec)

	// The gasket ring is exactly Width wide and sits Spacing clear of
	// both slot walls.
	require.InDelta(t, 2*g.Width, g.OuterWidth-g.InnerWidth, 1e-9)
	require.InDelta(t, 2*g.Spacing, g.SlotOuterWidth-g.OuterWidth, 1e-9)
	require.InDelta(t, 2*g.Spacing, g.InnerWidth-g.SlotInnerWidth, 1e-9)
	require.InDelta(t, 2*g.Width, g.OuterLength-g.InnerLength, 1e-9)
}

func TestGasketSlotStraddlesWallMidline(t *testing.T) {
	spec := mustSpec(t, repParams())
	g := gasketProfile(spec)
	d := spec.Dim

	mid := d.OuterWidth - d.WallThickness // twice the wall centerline offset
	require.InDelta(t, mid, (g.SlotOuterWidth+g.SlotInnerWidth)/2, 1e-9)
}

func TestBossRingRadii(t *testing.T) {
	p := repParams()
	p.ScrewLocation = ScrewInsideBox
	spec := mustSpec(t, p)
	b := &builder{k: &fakeKernel{}, spec: spec, gasket: gasketProfile(spec)}

	outerR, innerR := b.bossRingRadii(b.gasket.SlotWidth)
	holeR := spec.ScrewHoleDiameter / 2
	require.InDelta(t, b.gasket.SlotWidth, outerR-innerR, 1e-9)
	require.Greater(t, innerR, holeR, "ring must clear the screw hole")
	require.Less(t, outerR, spec.Dim.BossRadius, "ring must stay on the boss")
}

func TestGasketCompressionScalesPress(t *testing.T) {
	p := repParams()
	p.GasketCompression = 0.5
	g := gasketProfile(mustSpec(t, p))
	require.InDelta(t, 2.4, g.PressHeight, 1e-9)
	require.InDelta(t, 0.8, g.SeatHeight, 1e-9)
}
