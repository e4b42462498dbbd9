package loader

// LoaderBuilderOption is a function that configures a loader instance during construction.
type LoaderBuilderOption func(*loader)

// WithMipGeneration is an option builder that controls whether imported
// textures get a full mip chain. Enabled by default.
//
// Parameters:
//   - enabled: true to generate mips for imported textures
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mip option to a loader
func WithMipGeneration(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.generateMips = enabled
	}
}
