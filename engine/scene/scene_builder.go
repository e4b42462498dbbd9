package scene

import (
	"github.com/Carmen-Shannon/umbra-go/engine/camera"
	"github.com/Carmen-Shannon/umbra-go/engine/light"
)

// SceneBuilderOption is a function that configures a scene instance during construction.
type SceneBuilderOption func(*scene)

// WithMainCamera is an option builder that binds the main camera.
//
// Parameters:
//   - cam: the camera the frame renders from
//
// Returns:
//   - SceneBuilderOption: a function that applies the camera option to a scene
func WithMainCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.mainCamera = cam
	}
}

// WithSkybox is an option builder that sets the scene's skybox.
//
// Parameters:
//   - skybox: the skybox
//
// Returns:
//   - SceneBuilderOption: a function that applies the skybox option to a scene
func WithSkybox(skybox *Skybox) SceneBuilderOption {
	return func(s *scene) {
		s.skybox = skybox
	}
}

// WithCascadeSettings is an option builder that overrides the shadow cascade
// configuration used for lights added to the scene.
//
// Parameters:
//   - settings: the cascade configuration tables
//
// Returns:
//   - SceneBuilderOption: a function that applies the cascade option to a scene
func WithCascadeSettings(settings light.CascadeSettings) SceneBuilderOption {
	return func(s *scene) {
		s.cascadeSettings = settings
	}
}

// WithAmbientColor is an option builder that sets the scene's ambient RGB color.
//
// Parameters:
//   - color: the ambient color
//
// Returns:
//   - SceneBuilderOption: a function that applies the ambient option to a scene
func WithAmbientColor(color [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambientColor = color
	}
}
