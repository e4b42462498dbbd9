// package texture generates procedural textures and their mip chains on the
// CPU. The deferred lighting pass samples a noise texture for dithering and
// screen-space effects; generating it here keeps the renderer free of asset
// imports.
package texture

import (
	"fmt"
	"math/bits"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/umbra-go/common"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// mipWorkers caps the worker pool used for mip chain generation.
const mipWorkers = 4

// GenerateNoise produces a deterministic RGBA value-noise image. The same
// size always yields the same pixels, so frames are reproducible across runs.
//
// Parameters:
//   - size: the width and height of the square image in pixels
//
// Returns:
//   - common.TextureStagingData: the generated image
//   - error: an error if size is not positive
func GenerateNoise(size int) (common.TextureStagingData, error) {
	if size <= 0 {
		return common.TextureStagingData{}, fmt.Errorf("noise texture size must be positive, got %d", size)
	}

	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			pixels[i] = hashByte(uint32(x), uint32(y), 0)
			pixels[i+1] = hashByte(uint32(x), uint32(y), 1)
			pixels[i+2] = hashByte(uint32(x), uint32(y), 2)
			pixels[i+3] = 255
		}
	}
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(size),
		Height: uint32(size),
	}, nil
}

// hashByte mixes pixel coordinates and a channel index into one noise byte.
func hashByte(x, y, channel uint32) byte {
	h := x*0x9E3779B1 ^ y*0x85EBCA77 ^ channel*0xC2B2AE3D
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	return byte(h)
}

// GenerateMipChain downsamples an RGBA image into its full mip chain, one
// level per halving down to 1x1. Levels are computed concurrently on a worker
// pool; each worker reads only the shared base image and writes only its own
// output buffer, and the results are merged back in level order once every
// worker finishes.
//
// Parameters:
//   - base: the full-resolution image
//
// Returns:
//   - [][]byte: the mip levels, index 0 being the first level below base
//   - error: an error if the base image dimensions are invalid
func GenerateMipChain(base common.TextureStagingData) ([][]byte, error) {
	if base.Width == 0 || base.Height == 0 {
		return nil, fmt.Errorf("mip chain requires positive base dimensions, got %dx%d", base.Width, base.Height)
	}
	if len(base.Pixels) < int(base.Width*base.Height*4) {
		return nil, fmt.Errorf("mip chain base holds %d bytes, need %d", len(base.Pixels), base.Width*base.Height*4)
	}

	levels := mipLevelCount(base.Width, base.Height)
	if levels == 0 {
		return nil, nil
	}

	// Workers idle-exit on their own after the timeout.
	mips := make([][]byte, levels)
	pool := worker.NewDynamicWorkerPool(mipWorkers, levels, 1*time.Second)

	// Per-level barrier; pool.Wait blocks until workers idle-exit which is
	// unsuitable here.
	var wg sync.WaitGroup
	for level := 1; level <= levels; level++ {
		wg.Add(1)
		lvl := level
		pool.SubmitTask(worker.Task{
			ID: lvl,
			Do: func() (any, error) {
				defer wg.Done()
				mips[lvl-1] = downsampleLevel(base, lvl)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return mips, nil
}

// mipLevelCount returns the number of levels below the base resolution.
func mipLevelCount(width, height uint32) int {
	larger := max(width, height)
	return bits.Len32(larger) - 1
}

// downsampleLevel box-filters the base image down to the given mip level.
// Sampling from the base rather than the previous level keeps every level
// independent, at the cost of touching more texels for the small levels.
func downsampleLevel(base common.TextureStagingData, level int) []byte {
	dstW := max(base.Width>>level, 1)
	dstH := max(base.Height>>level, 1)
	blockW := base.Width / dstW
	blockH := base.Height / dstH

	out := make([]byte, dstW*dstH*4)
	for y := uint32(0); y < dstH; y++ {
		for x := uint32(0); x < dstW; x++ {
			var sum [4]uint32
			for by := uint32(0); by < blockH; by++ {
				for bx := uint32(0); bx < blockW; bx++ {
					src := ((y*blockH+by)*base.Width + x*blockW + bx) * 4
					for c := 0; c < 4; c++ {
						sum[c] += uint32(base.Pixels[src+uint32(c)])
					}
				}
			}
			samples := blockW * blockH
			dst := (y*dstW + x) * 4
			for c := 0; c < 4; c++ {
				out[dst+uint32(c)] = byte(sum[c] / samples)
			}
		}
	}
	return out
}

// CreateNoiseTexture generates the noise image with its full mip chain and
// uploads it to the device.
//
// Parameters:
//   - dev: the device to create the texture on
//   - size: the width and height of the square texture in pixels
//
// Returns:
//   - *device.Texture: the uploaded noise texture
//   - error: an error if generation or upload fails
func CreateNoiseTexture(dev device.Device, size int) (*device.Texture, error) {
	base, err := GenerateNoise(size)
	if err != nil {
		return nil, err
	}
	mips, err := GenerateMipChain(base)
	if err != nil {
		return nil, err
	}
	tex, err := dev.CreateTexture(base, mips)
	if err != nil {
		return nil, fmt.Errorf("failed to upload noise texture: %w", err)
	}
	return tex, nil
}
