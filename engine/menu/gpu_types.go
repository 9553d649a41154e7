package menu

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUFrameUniform is the per-frame uniform block the disc shader reads alongside the instance
// buffer: camera matrices plus the sphere's motion, which drives the stretch effect while spinning.
// Size: 160 bytes (WGSL/std140 aligned).
type GPUFrameUniform struct {
	View             [16]float32 // offset   0: view matrix (mat4x4<f32>)
	Projection       [16]float32 // offset  64: projection matrix (mat4x4<f32>)
	CameraPosition   [3]float32  // offset 128: world-space camera position (vec3<f32>)
	RotationVelocity float32     // offset 140: angular speed in radians per second
	RotationAxis     [3]float32  // offset 144: unit rotation axis or zero (vec3<f32>)
	_pad             float32     // offset 156: padding to 160 bytes
}

// NewGPUFrameUniform packs the frame's camera and motion state.
//
// Parameters:
//   - view, projection: column-major camera matrices
//   - cameraPosition: world-space camera position
//   - axis: rotation axis
//   - velocity: angular speed
//
// Returns:
//   - GPUFrameUniform: the packed uniform
func NewGPUFrameUniform(view, projection mgl32.Mat4, cameraPosition, axis mgl32.Vec3, velocity float32) GPUFrameUniform {
	return GPUFrameUniform{
		View:             view,
		Projection:       projection,
		CameraPosition:   cameraPosition,
		RotationVelocity: velocity,
		RotationAxis:     axis,
	}
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}
	for i := range 16 {
		put(i*4, g.View[i])
		put(64+i*4, g.Projection[i])
	}
	for i := range 3 {
		put(128+i*4, g.CameraPosition[i])
		put(144+i*4, g.RotationAxis[i])
	}
	put(140, g.RotationVelocity)
	put(156, 0) // _pad
	return buf
}
