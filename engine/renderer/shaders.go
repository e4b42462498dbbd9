package renderer

// Shader sources live as Go constants so the renderer has no asset path or
// embed dependency. Bindings follow the device convention: constant buffers
// first, then textures, then samplers, all consecutive in group 0.

// depthShaderSource renders linear shadow depth into a single-channel target.
const depthShaderSource = `
struct Transform {
    world_view_projection: mat4x4f,
    world: mat4x4f,
};

@group(0) @binding(0) var<uniform> transform: Transform;

@vertex
fn vs_main(@location(0) position: vec3f,
           @location(1) normal: vec3f,
           @location(2) tangent: vec3f,
           @location(3) uv: vec2f) -> @builtin(position) vec4f {
    return transform.world_view_projection * vec4f(position, 1.0);
}

@fragment
fn fs_main(@builtin(position) frag: vec4f) -> @location(0) f32 {
    return frag.z;
}
`

// gbufferShaderSource fills the geometry buffer. The depth channel carries
// world-space position in rgb and clip depth in a, so the lighting pass never
// needs an inverse view projection.
const gbufferShaderSource = `
struct Transform {
    world_view_projection: mat4x4f,
    world: mat4x4f,
    receives_shadows: f32,
};

struct MaterialParams {
    base_color: vec4f,
    roughness: f32,
    metallic: f32,
    opacity: f32,
    pad: f32,
};

@group(0) @binding(0) var<uniform> transform: Transform;
@group(0) @binding(1) var<uniform> material: MaterialParams;

@group(0) @binding(2) var albedo_tex: texture_2d<f32>;
@group(0) @binding(3) var roughness_tex: texture_2d<f32>;
@group(0) @binding(4) var metallic_tex: texture_2d<f32>;
@group(0) @binding(5) var occlusion_tex: texture_2d<f32>;
@group(0) @binding(6) var normal_tex: texture_2d<f32>;
@group(0) @binding(7) var height_tex: texture_2d<f32>;
@group(0) @binding(8) var mask_tex: texture_2d<f32>;
@group(0) @binding(9) var material_sampler: sampler;

struct VertexOut {
    @builtin(position) clip: vec4f,
    @location(0) world_pos: vec3f,
    @location(1) normal: vec3f,
    @location(2) tangent: vec3f,
    @location(3) uv: vec2f,
};

struct FragmentOut {
    @location(0) albedo: vec4f,
    @location(1) normal: vec4f,
    @location(2) position_depth: vec4f,
    @location(3) material: vec4f,
};

@vertex
fn vs_main(@location(0) position: vec3f,
           @location(1) normal: vec3f,
           @location(2) tangent: vec3f,
           @location(3) uv: vec2f) -> VertexOut {
    var out: VertexOut;
    let world = transform.world * vec4f(position, 1.0);
    out.clip = transform.world_view_projection * vec4f(position, 1.0);
    out.world_pos = world.xyz;
    out.normal = normalize((transform.world * vec4f(normal, 0.0)).xyz);
    out.tangent = normalize((transform.world * vec4f(tangent, 0.0)).xyz);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> FragmentOut {
    var out: FragmentOut;

    let albedo_sample = textureSample(albedo_tex, material_sampler, in.uv);
    out.albedo = vec4f(albedo_sample.rgb * material.base_color.rgb, 1.0);

    let tangent_normal = textureSample(normal_tex, material_sampler, in.uv).xyz * 2.0 - 1.0;
    let n = normalize(in.normal);
    let t = normalize(in.tangent - n * dot(in.tangent, n));
    let b = cross(n, t);
    let world_normal = normalize(mat3x3f(t, b, n) * tangent_normal);
    out.normal = vec4f(world_normal * 0.5 + 0.5, 1.0);

    out.position_depth = vec4f(in.world_pos, in.clip.z / in.clip.w);

    let roughness = material.roughness * textureSample(roughness_tex, material_sampler, in.uv).r;
    let metallic = material.metallic * textureSample(metallic_tex, material_sampler, in.uv).r;
    let occlusion = textureSample(occlusion_tex, material_sampler, in.uv).r;
    out.material = vec4f(roughness, metallic, occlusion, transform.receives_shadows);
    return out;
}
`

// lightingShaderSource composites the geometry buffer into lit color. Every
// light is evaluated in one fullscreen draw.
const lightingShaderSource = `
struct FrameParams {
    quad_transform: mat4x4f,
    camera_position: vec3f,
    light_count: u32,
    ambient_color: vec3f,
    pad: f32,
};

struct Light {
    position: vec3f,
    light_type: u32,
    color: vec3f,
    intensity: f32,
    direction: vec3f,
    range_cutoff: f32,
    inner_cone: f32,
    outer_cone: f32,
    casts_shadows: u32,
    pad: u32,
};

struct Cascades {
    splits: vec2f,
    count: u32,
    pad: u32,
    view_proj: array<mat4x4f, 3>,
};

@group(0) @binding(0) var<uniform> frame: FrameParams;
@group(0) @binding(1) var<uniform> lights: array<Light, 64>;
@group(0) @binding(2) var<uniform> cascades: Cascades;

@group(0) @binding(3) var albedo_tex: texture_2d<f32>;
@group(0) @binding(4) var normal_tex: texture_2d<f32>;
@group(0) @binding(5) var position_tex: texture_2d<f32>;
@group(0) @binding(6) var material_tex: texture_2d<f32>;
@group(0) @binding(7) var shadow_tex_0: texture_2d<f32>;
@group(0) @binding(8) var shadow_tex_1: texture_2d<f32>;
@group(0) @binding(9) var shadow_tex_2: texture_2d<f32>;
@group(0) @binding(10) var noise_tex: texture_2d<f32>;
@group(0) @binding(11) var environment_tex: texture_2d<f32>;
@group(0) @binding(12) var linear_sampler: sampler;

struct VertexOut {
    @builtin(position) clip: vec4f,
    @location(0) uv: vec2f,
};

@vertex
fn vs_main(@location(0) position: vec3f, @location(1) uv: vec2f) -> VertexOut {
    var out: VertexOut;
    out.clip = frame.quad_transform * vec4f(position, 1.0);
    out.uv = uv;
    return out;
}

fn sample_shadow(cascade: u32, uv: vec2f, depth: f32) -> f32 {
    let bias = 0.002;
    var stored: f32;
    if cascade == 0u {
        stored = textureSample(shadow_tex_0, linear_sampler, uv).r;
    } else if cascade == 1u {
        stored = textureSample(shadow_tex_1, linear_sampler, uv).r;
    } else {
        stored = textureSample(shadow_tex_2, linear_sampler, uv).r;
    }
    return select(1.0, 0.0, depth - bias > stored);
}

fn shadow_factor(world_pos: vec3f, view_depth: f32) -> f32 {
    if cascades.count == 0u {
        return 1.0;
    }
    var cascade = 2u;
    if view_depth < cascades.splits.x {
        cascade = 0u;
    } else if view_depth < cascades.splits.y {
        cascade = 1u;
    }
    if cascade >= cascades.count {
        cascade = cascades.count - 1u;
    }
    let light_clip = cascades.view_proj[cascade] * vec4f(world_pos, 1.0);
    let ndc = light_clip.xyz / light_clip.w;
    let uv = vec2f(ndc.x * 0.5 + 0.5, 0.5 - ndc.y * 0.5);
    if uv.x < 0.0 || uv.x > 1.0 || uv.y < 0.0 || uv.y > 1.0 {
        return 1.0;
    }
    return sample_shadow(cascade, uv, ndc.z);
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4f {
    let albedo = textureSample(albedo_tex, linear_sampler, in.uv).rgb;
    let normal = normalize(textureSample(normal_tex, linear_sampler, in.uv).xyz * 2.0 - 1.0);
    let position_depth = textureSample(position_tex, linear_sampler, in.uv);
    let world_pos = position_depth.xyz;
    let surface = textureSample(material_tex, linear_sampler, in.uv);
    let roughness = surface.r;
    let metallic = surface.g;
    let occlusion = surface.b;
    let receives_shadows = surface.a;

    let view_dir = normalize(frame.camera_position - world_pos);
    var color = frame.ambient_color * albedo * occlusion;

    for (var i = 0u; i < frame.light_count; i++) {
        let l = lights[i];
        var light_dir: vec3f;
        var attenuation = 1.0;

        if l.light_type == 0u {
            light_dir = -l.direction;
        } else {
            let to_light = l.position - world_pos;
            let dist = length(to_light);
            if dist > l.range_cutoff {
                continue;
            }
            light_dir = to_light / dist;
            let falloff = clamp(1.0 - dist / l.range_cutoff, 0.0, 1.0);
            attenuation = falloff * falloff;
            if l.light_type == 2u {
                let cone = dot(-light_dir, l.direction);
                attenuation *= clamp((cone - l.outer_cone) / max(l.inner_cone - l.outer_cone, 0.0001), 0.0, 1.0);
            }
        }

        let n_dot_l = max(dot(normal, light_dir), 0.0);
        if n_dot_l <= 0.0 {
            continue;
        }

        var shadow = 1.0;
        if l.light_type == 0u && l.casts_shadows == 1u {
            shadow = mix(1.0, shadow_factor(world_pos, distance(frame.camera_position, world_pos)), receives_shadows);
        }

        let half_dir = normalize(light_dir + view_dir);
        let spec_power = mix(64.0, 2.0, roughness);
        let specular = pow(max(dot(normal, half_dir), 0.0), spec_power) * (1.0 - roughness);
        let diffuse = albedo * (1.0 - metallic);

        color += (diffuse * n_dot_l + vec3f(specular)) * l.color * l.intensity * attenuation * shadow;
    }

    let dither = (textureSample(noise_tex, linear_sampler, in.uv * 8.0).r - 0.5) / 255.0;
    return vec4f(color + dither, 1.0);
}
`

// fxaaShaderSource is a luminance-driven edge blur over the lit image.
const fxaaShaderSource = `
struct PostParams {
    quad_transform: mat4x4f,
    texel_size: vec2f,
    strength: f32,
    pad: f32,
};

@group(0) @binding(0) var<uniform> params: PostParams;
@group(0) @binding(1) var source_tex: texture_2d<f32>;
@group(0) @binding(2) var source_sampler: sampler;

struct VertexOut {
    @builtin(position) clip: vec4f,
    @location(0) uv: vec2f,
};

@vertex
fn vs_main(@location(0) position: vec3f, @location(1) uv: vec2f) -> VertexOut {
    var out: VertexOut;
    out.clip = params.quad_transform * vec4f(position, 1.0);
    out.uv = uv;
    return out;
}

fn luma(c: vec3f) -> f32 {
    return dot(c, vec3f(0.299, 0.587, 0.114));
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4f {
    let center = textureSample(source_tex, source_sampler, in.uv).rgb;
    let north = textureSample(source_tex, source_sampler, in.uv + vec2f(0.0, -params.texel_size.y)).rgb;
    let south = textureSample(source_tex, source_sampler, in.uv + vec2f(0.0, params.texel_size.y)).rgb;
    let west = textureSample(source_tex, source_sampler, in.uv + vec2f(-params.texel_size.x, 0.0)).rgb;
    let east = textureSample(source_tex, source_sampler, in.uv + vec2f(params.texel_size.x, 0.0)).rgb;

    let l_center = luma(center);
    let l_min = min(l_center, min(min(luma(north), luma(south)), min(luma(west), luma(east))));
    let l_max = max(l_center, max(max(luma(north), luma(south)), max(luma(west), luma(east))));

    if l_max - l_min < max(0.0312, l_max * 0.125) {
        return vec4f(center, 1.0);
    }
    let blurred = (center + north + south + west + east) * 0.2;
    return vec4f(mix(center, blurred, params.strength), 1.0);
}
`

// sharpenShaderSource is an unsharp mask applied after anti-aliasing.
const sharpenShaderSource = `
struct PostParams {
    quad_transform: mat4x4f,
    texel_size: vec2f,
    strength: f32,
    pad: f32,
};

@group(0) @binding(0) var<uniform> params: PostParams;
@group(0) @binding(1) var source_tex: texture_2d<f32>;
@group(0) @binding(2) var source_sampler: sampler;

struct VertexOut {
    @builtin(position) clip: vec4f,
    @location(0) uv: vec2f,
};

@vertex
fn vs_main(@location(0) position: vec3f, @location(1) uv: vec2f) -> VertexOut {
    var out: VertexOut;
    out.clip = params.quad_transform * vec4f(position, 1.0);
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4f {
    let center = textureSample(source_tex, source_sampler, in.uv).rgb;
    let north = textureSample(source_tex, source_sampler, in.uv + vec2f(0.0, -params.texel_size.y)).rgb;
    let south = textureSample(source_tex, source_sampler, in.uv + vec2f(0.0, params.texel_size.y)).rgb;
    let west = textureSample(source_tex, source_sampler, in.uv + vec2f(-params.texel_size.x, 0.0)).rgb;
    let east = textureSample(source_tex, source_sampler, in.uv + vec2f(params.texel_size.x, 0.0)).rgb;

    let sharpened = center * (1.0 + 4.0 * params.strength) - (north + south + west + east) * params.strength;
    return vec4f(clamp(sharpened, vec3f(0.0), vec3f(1.0)), 1.0);
}
`

// lineShaderSource renders debug line geometry over the final image.
const lineShaderSource = `
struct Transform {
    world_view_projection: mat4x4f,
    world: mat4x4f,
};

@group(0) @binding(0) var<uniform> transform: Transform;

struct VertexOut {
    @builtin(position) clip: vec4f,
    @location(0) color: vec4f,
};

@vertex
fn vs_main(@location(0) position: vec3f, @location(1) color: vec4f) -> VertexOut {
    var out: VertexOut;
    out.clip = transform.world_view_projection * vec4f(position, 1.0);
    out.color = color;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4f {
    return in.color;
}
`
