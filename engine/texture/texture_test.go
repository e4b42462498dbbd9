package texture

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNoiseIsDeterministic(t *testing.T) {
	a, err := GenerateNoise(32)
	require.NoError(t, err)
	b, err := GenerateNoise(32)
	require.NoError(t, err)

	assert.Equal(t, a.Pixels, b.Pixels)
	assert.Equal(t, uint32(32), a.Width)
	assert.Len(t, a.Pixels, 32*32*4)

	_, err = GenerateNoise(0)
	assert.Error(t, err)
}

func TestGenerateMipChainLevelSizes(t *testing.T) {
	base, err := GenerateNoise(64)
	require.NoError(t, err)

	mips, err := GenerateMipChain(base)
	require.NoError(t, err)

	// 64 -> 32, 16, 8, 4, 2, 1
	require.Len(t, mips, 6)
	size := 32
	for i, mip := range mips {
		assert.Len(t, mip, size*size*4, "mip %d", i)
		size /= 2
	}
}

func TestGenerateMipChainOrderIsStable(t *testing.T) {
	base, err := GenerateNoise(16)
	require.NoError(t, err)

	first, err := GenerateMipChain(base)
	require.NoError(t, err)

	// Identical inputs always merge back into identical level order
	// regardless of worker completion order.
	for run := 0; run < 8; run++ {
		again, err := GenerateMipChain(base)
		require.NoError(t, err)
		assert.Equal(t, first, again, "run %d", run)
	}
}

func TestGenerateMipChainAveragesBlocks(t *testing.T) {
	// A 2x2 image of two black and two white pixels averages to mid gray.
	base, err := GenerateNoise(2)
	require.NoError(t, err)
	base.Pixels = []byte{
		0, 0, 0, 255, 255, 255, 255, 255,
		255, 255, 255, 255, 0, 0, 0, 255,
	}

	mips, err := GenerateMipChain(base)
	require.NoError(t, err)
	require.Len(t, mips, 1)
	assert.Equal(t, []byte{127, 127, 127, 255}, mips[0])
}

func TestCreateNoiseTexture(t *testing.T) {
	dev := device.NewNullDevice(64, 64)
	tex, err := CreateNoiseTexture(dev, 64)
	require.NoError(t, err)
	assert.Equal(t, uint32(64), tex.Width())
	assert.Equal(t, uint32(64), tex.Height())
}
