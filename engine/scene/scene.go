package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/umbra-go/engine/camera"
	"github.com/Carmen-Shannon/umbra-go/engine/game_object"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/device"
)

// Skybox holds the environment of a scene: a cube texture sampled by the
// lighting pass for reflections and background color.
type Skybox struct {
	// EnvironmentTexture is the environment cube texture, or nil.
	EnvironmentTexture *device.Texture
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	dev             device.Device
	cascadeSettings light.CascadeSettings

	mainCamera camera.Camera
	skybox     *Skybox

	objects     map[uint64]game_object.GameObject
	objectOrder []uint64

	lights   []light.Light
	cascades map[light.Light]light.CascadeSet

	ambientColor [3]float32
}

// Scene defines the interface for the registry of everything the renderer
// consumes per frame: renderable objects, lights, the main camera, and the
// skybox. A Scene is safe for concurrent use; the renderer takes snapshots of
// the object and light lists at frame start.
//
// Adding a shadow-casting light allocates its shadow cascade set on the
// scene's device; the set stays owned by the scene and is looked up by the
// shadow pass through ShadowCascades.
type Scene interface {
	// Name retrieves the scene identifier.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active reports whether the scene is active for rendering.
	//
	// Returns:
	//   - bool: true if active
	Active() bool

	// SetActive sets whether the scene is active for rendering.
	//
	// Parameters:
	//   - active: true to activate
	SetActive(active bool)

	// MainCamera retrieves the camera the frame renders from, or nil if none
	// is bound.
	//
	// Returns:
	//   - camera.Camera: the main camera or nil
	MainCamera() camera.Camera

	// SetMainCamera binds the camera the frame renders from.
	//
	// Parameters:
	//   - cam: the camera to bind, or nil to unbind
	SetMainCamera(cam camera.Camera)

	// Skybox retrieves the scene's skybox, or nil if none is set.
	//
	// Returns:
	//   - *Skybox: the skybox or nil
	Skybox() *Skybox

	// SetSkybox sets the scene's skybox.
	//
	// Parameters:
	//   - skybox: the skybox, or nil to clear
	SetSkybox(skybox *Skybox)

	// Add registers a game object with the scene.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's identifier
	Add(obj game_object.GameObject) uint64

	// Get retrieves a registered object by identifier.
	//
	// Parameters:
	//   - id: the object identifier
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if unknown
	Get(id uint64) game_object.GameObject

	// Remove unregisters an object by identifier. Unknown identifiers are
	// ignored.
	//
	// Parameters:
	//   - id: the object identifier
	Remove(id uint64)

	// Count returns the number of registered objects.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Renderables returns the enabled objects in insertion order. The
	// returned slice is a snapshot owned by the caller.
	//
	// Returns:
	//   - []game_object.GameObject: the enabled objects
	Renderables() []game_object.GameObject

	// AddLight registers a light with the scene. Shadow-casting lights get a
	// cascade set allocated on the scene's device.
	//
	// Parameters:
	//   - l: the light to add
	//
	// Returns:
	//   - error: an error if cascade set allocation fails
	AddLight(l light.Light) error

	// RemoveLight unregisters a light and releases its cascade set.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// DirectionalLights returns the enabled directional lights. The returned
	// slice is a snapshot owned by the caller.
	//
	// Returns:
	//   - []light.Light: the enabled directional lights
	DirectionalLights() []light.Light

	// PointLights returns the enabled point and spot lights. The returned
	// slice is a snapshot owned by the caller.
	//
	// Returns:
	//   - []light.Light: the enabled point and spot lights
	PointLights() []light.Light

	// ShadowCascades retrieves the cascade set for a shadow-casting light, or
	// nil if the light has none.
	//
	// Parameters:
	//   - l: the light to look up
	//
	// Returns:
	//   - light.CascadeSet: the cascade set or nil
	ShadowCascades(l light.Light) light.CascadeSet

	// AmbientColor returns the scene's ambient RGB color.
	//
	// Returns:
	//   - [3]float32: the ambient color
	AmbientColor() [3]float32

	// SetAmbientColor sets the scene's ambient RGB color.
	//
	// Parameters:
	//   - color: the ambient color
	SetAmbientColor(color [3]float32)

	// Clear removes every object and light from the scene.
	Clear()
}

var _ Scene = &scene{}

// NewScene creates a new Scene configured with the provided options.
//
// Parameters:
//   - name: the scene identifier
//   - dev: the device shadow cascade targets are created on
//   - options: variadic list of SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: a new Scene instance
//   - error: an error if no device is supplied
func NewScene(name string, dev device.Device, options ...SceneBuilderOption) (Scene, error) {
	if dev == nil {
		return nil, fmt.Errorf("scene %q requires a device", name)
	}
	s := &scene{
		mu:              &sync.RWMutex{},
		name:            name,
		active:          true,
		dev:             dev,
		cascadeSettings: light.DefaultCascadeSettings(),
		objects:         make(map[uint64]game_object.GameObject),
		cascades:        make(map[light.Light]light.CascadeSet),
		ambientColor:    [3]float32{0.03, 0.03, 0.03},
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) MainCamera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mainCamera
}

func (s *scene) SetMainCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mainCamera = cam
}

func (s *scene) Skybox() *Skybox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skybox
}

func (s *scene) SetSkybox(skybox *Skybox) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skybox = skybox
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := obj.ID()
	if _, exists := s.objects[id]; !exists {
		s.objectOrder = append(s.objectOrder, id)
	}
	s.objects[id] = obj
	return id
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[id]; !exists {
		return
	}
	delete(s.objects, id)
	for i, oid := range s.objectOrder {
		if oid == id {
			s.objectOrder = append(s.objectOrder[:i], s.objectOrder[i+1:]...)
			break
		}
	}
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Renderables() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, 0, len(s.objectOrder))
	for _, id := range s.objectOrder {
		obj := s.objects[id]
		if obj != nil && obj.Enabled() {
			out = append(out, obj)
		}
	}
	return out
}

func (s *scene) AddLight(l light.Light) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.lights {
		if existing == l {
			return nil
		}
	}
	if l.CastsShadows() {
		set, err := light.NewCascadeSet(l, s.cascadeSettings, s.dev)
		if err != nil {
			return fmt.Errorf("failed to add light to scene %q: %w", s.name, err)
		}
		s.cascades[l] = set
	}
	s.lights = append(s.lights, l)
	return nil
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			break
		}
	}
	delete(s.cascades, l)
}

func (s *scene) DirectionalLights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []light.Light
	for _, l := range s.lights {
		if l.Enabled() && l.Type() == light.LightTypeDirectional {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) PointLights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []light.Light
	for _, l := range s.lights {
		if l.Enabled() && l.Type() != light.LightTypeDirectional {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) ShadowCascades(l light.Light) light.CascadeSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cascades[l]
}

func (s *scene) AmbientColor() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor
}

func (s *scene) SetAmbientColor(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = color
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[uint64]game_object.GameObject)
	s.objectOrder = nil
	s.lights = nil
	s.cascades = make(map[light.Light]light.CascadeSet)
}
