package game_object

import (
	"github.com/Carmen-Shannon/umbra-go/engine/model"
	"github.com/Carmen-Shannon/umbra-go/engine/renderer/material"
)

// GameObjectBuilderOption is a function that configures a game object during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName is an option builder that sets the display name of the object.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the name option to a game object
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithMesh is an option builder that sets the geometry of the object.
//
// Parameters:
//   - mesh: the mesh the object renders with
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the mesh option to a game object
func WithMesh(mesh model.Mesh) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.meshFilter.Mesh = mesh
	}
}

// WithMaterial is an option builder that sets the material of the object.
//
// Parameters:
//   - mat: the material the object renders with
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the material option to a game object
func WithMaterial(mat material.Material) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.meshRenderer.Material = mat
	}
}

// WithPosition is an option builder that sets the initial world position.
//
// Parameters:
//   - position: the world-space position
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the position option to a game object
func WithPosition(position [3]float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = position
	}
}

// WithRotation is an option builder that sets the initial rotation in radians per axis.
//
// Parameters:
//   - rotation: the rotation angles
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the rotation option to a game object
func WithRotation(rotation [3]float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.rotation = rotation
	}
}

// WithScale is an option builder that sets the initial per-axis scale.
//
// Parameters:
//   - scale: the scale factors
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the scale option to a game object
func WithScale(scale [3]float32) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = scale
	}
}

// WithCastsShadows is an option builder that controls shadow casting.
//
// Parameters:
//   - casts: true to draw the object into shadow maps
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the shadow casting option to a game object
func WithCastsShadows(casts bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.meshRenderer.CastsShadows = casts
	}
}

// WithReceivesShadows is an option builder that controls shadow receiving.
//
// Parameters:
//   - receives: true to sample shadow maps when shading the object
//
// Returns:
//   - GameObjectBuilderOption: a function that applies the shadow receiving option to a game object
func WithReceivesShadows(receives bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.meshRenderer.ReceivesShadows = receives
	}
}
