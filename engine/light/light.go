package light

import (
	"github.com/chewxy/math32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Used for bare bulbs, lanterns, candle flames, and particle-emitted lights.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Used for flashlights, desk lamps, and wall sconces. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   [3]float32
	rotation   [3]float32 // degrees, pitch/yaw/roll
	color      [3]float32
	intensity  float32
	lightRange float32
	innerCone  float32 // stored as cos(angle in radians)
	outerCone  float32 // stored as cos(angle in radians)

	enabled      bool
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities evaluated by the deferred lighting pass.
// All light types (directional, point, spot) share this interface;
// type-specific properties (e.g. cone angles for spot lights) return zero
// values when not applicable. The light's direction is derived from its
// rotation, so a directional light is aimed by rotating it.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Rotation returns the light's rotation in degrees per axis (pitch, yaw, roll).
	//
	// Returns:
	//   - [3]float32: the rotation angles in degrees
	Rotation() [3]float32

	// SetRotation sets the light's rotation in degrees per axis. For
	// directional lights the pitch is clamped to the open (0°, 180°) interval
	// so the derived direction always has a downward component; a pitch at or
	// below 0° wraps to 179° and a pitch at or above 180° wraps to 1°.
	//
	// Parameters:
	//   - pitch, yaw, roll: rotation angles in degrees
	SetRotation(pitch, yaw, roll float32)

	// Direction returns the normalized forward direction derived from the
	// light's rotation. For directional lights this is the light travel
	// direction; for spot lights the cone axis. Meaningless for point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// Range returns the maximum attenuation distance for point and spot lights.
	// Beyond this distance the light contributes zero energy. Meaningless for
	// directional lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// SetRange sets the maximum attenuation distance.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	// Fragments within this angle receive full intensity. Meaningless for
	// directional and point lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	// Fragments outside this angle receive zero intensity from the spot cone
	// falloff. Meaningless for directional and point lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// OuterConeAngle returns the outer cone half-angle in radians, used to
	// size the spot light's shadow projection.
	//
	// Returns:
	//   - float32: the outer half-angle in radians
	OuterConeAngle() float32

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// CastsShadows returns whether this light is eligible for shadow map
	// generation. Shadow-casting lights have their depth pass rendered each
	// frame, which is expensive.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:    lightType,
		rotation:     [3]float32{90, 0, 0}, // straight down
		color:        [3]float32{1, 1, 1},
		intensity:    1.0,
		lightRange:   10.0,
		innerCone:    0.9063, // cos(25°)
		outerCone:    0.8192, // cos(35°)
		enabled:      true,
		castsShadows: false,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.rotation = l.clampRotation(l.rotation)
	return l
}

// clampRotation keeps a directional light's pitch inside the open (0°, 180°)
// interval. A pitch outside that range would aim the light at or above the
// horizon and produce a degenerate shadow frustum.
func (l *lightImpl) clampRotation(rotation [3]float32) [3]float32 {
	if l.lightType != LightTypeDirectional {
		return rotation
	}
	if rotation[0] <= 0 {
		rotation[0] = 179
	} else if rotation[0] >= 180 {
		rotation[0] = 1
	}
	return rotation
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) Rotation() [3]float32 {
	return l.rotation
}

func (l *lightImpl) SetRotation(pitch, yaw, roll float32) {
	l.rotation = l.clampRotation([3]float32{pitch, yaw, roll})
}

func (l *lightImpl) Direction() [3]float32 {
	pitch := l.rotation[0] * math32.Pi / 180
	yaw := l.rotation[1] * math32.Pi / 180

	cp := math32.Cos(pitch)
	sp := math32.Sin(pitch)
	cy := math32.Cos(yaw)
	sy := math32.Sin(yaw)

	return normalize3(cp*sy, -sp, cp*cy)
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) OuterConeAngle() float32 {
	return math32.Acos(l.outerCone)
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func normalize3(x, y, z float32) [3]float32 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return [3]float32{0, -1, 0}
	}
	return [3]float32{x / length, y / length, z / length}
}

func cosDeg(deg float32) float32 {
	return math32.Cos(deg * math32.Pi / 180)
}
