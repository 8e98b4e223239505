package renderer

// Fragment shader kernels for the solver passes, embedded so the render
// backend has no asset-path dependency. All passes address texels through
// gl_FragCoord over an explicit resolution uniform, the same convention as
// the rest of this package's shaders.
//
// Render textures are RGBA8, so signed quantities are byte-encoded around a
// zero point of 128/255: velocity in the RG channels, scalars in R. The
// encode ranges bound representable velocity (texels/sec) and scalar
// magnitudes; values beyond them clamp.

const shaderPrelude = `#version 330

out vec4 finalColor;

uniform vec2 resolution;

const float VEL_RANGE = 40.0;
const float SCALAR_RANGE = 20.0;
const float ZERO = 128.0 / 255.0;

vec2 uvAt(vec2 offset) {
    return (gl_FragCoord.xy + offset) / resolution;
}

vec2 decodeVel(vec4 t) {
    return (t.xy - ZERO) * 2.0 * VEL_RANGE;
}

vec4 encodeVel(vec2 v) {
    return vec4(clamp(v / (2.0 * VEL_RANGE) + ZERO, 0.0, 1.0), ZERO, 1.0);
}

float decodeScalar(vec4 t) {
    return (t.x - ZERO) * 2.0 * SCALAR_RANGE;
}

vec4 encodeScalar(float s) {
    return vec4(clamp(s / (2.0 * SCALAR_RANGE) + ZERO, 0.0, 1.0), ZERO, ZERO, 1.0);
}
`

// curl = dv_y/dx - dv_x/dy, central differences.
const curlShader = shaderPrelude + `
uniform sampler2D uVelocity;

void main() {
    float L = decodeVel(texture(uVelocity, uvAt(vec2(-1.0, 0.0)))).y;
    float R = decodeVel(texture(uVelocity, uvAt(vec2(1.0, 0.0)))).y;
    float B = decodeVel(texture(uVelocity, uvAt(vec2(0.0, -1.0)))).x;
    float T = decodeVel(texture(uVelocity, uvAt(vec2(0.0, 1.0)))).x;
    finalColor = encodeScalar(0.5 * ((R - L) - (T - B)));
}
`

// Confinement force perpendicular to the normalized gradient of |curl|.
const vorticityShader = shaderPrelude + `
uniform sampler2D uVelocity;
uniform sampler2D uCurl;
uniform float curlStrength;
uniform float dt;

void main() {
    float L = abs(decodeScalar(texture(uCurl, uvAt(vec2(-1.0, 0.0)))));
    float R = abs(decodeScalar(texture(uCurl, uvAt(vec2(1.0, 0.0)))));
    float B = abs(decodeScalar(texture(uCurl, uvAt(vec2(0.0, -1.0)))));
    float T = abs(decodeScalar(texture(uCurl, uvAt(vec2(0.0, 1.0)))));
    float C = decodeScalar(texture(uCurl, uvAt(vec2(0.0, 0.0))));

    vec2 grad = 0.5 * vec2(R - L, T - B);
    vec2 n = grad / (length(grad) + 1e-5);
    vec2 force = curlStrength * C * vec2(n.y, -n.x);

    vec2 vel = decodeVel(texture(uVelocity, uvAt(vec2(0.0, 0.0))));
    finalColor = encodeVel(vel + force * dt);
}
`

// Central-difference divergence; boundary-normal components are mirrored and
// negated at the domain edges so the fluid stays contained.
const divergenceShader = shaderPrelude + `
uniform sampler2D uVelocity;

void main() {
    vec2 C = decodeVel(texture(uVelocity, uvAt(vec2(0.0, 0.0))));
    float L = decodeVel(texture(uVelocity, uvAt(vec2(-1.0, 0.0)))).x;
    float R = decodeVel(texture(uVelocity, uvAt(vec2(1.0, 0.0)))).x;
    float B = decodeVel(texture(uVelocity, uvAt(vec2(0.0, -1.0)))).y;
    float T = decodeVel(texture(uVelocity, uvAt(vec2(0.0, 1.0)))).y;

    if (gl_FragCoord.x < 1.0) { L = -C.x; }
    if (gl_FragCoord.x > resolution.x - 1.0) { R = -C.x; }
    if (gl_FragCoord.y < 1.0) { B = -C.y; }
    if (gl_FragCoord.y > resolution.y - 1.0) { T = -C.y; }

    finalColor = encodeScalar(0.5 * (R - L + T - B));
}
`

// One Jacobi relaxation step of the pressure Poisson equation.
const pressureShader = shaderPrelude + `
uniform sampler2D uPressure;
uniform sampler2D uDivergence;

void main() {
    float L = decodeScalar(texture(uPressure, uvAt(vec2(-1.0, 0.0))));
    float R = decodeScalar(texture(uPressure, uvAt(vec2(1.0, 0.0))));
    float B = decodeScalar(texture(uPressure, uvAt(vec2(0.0, -1.0))));
    float T = decodeScalar(texture(uPressure, uvAt(vec2(0.0, 1.0))));
    float div = decodeScalar(texture(uDivergence, uvAt(vec2(0.0, 0.0))));
    finalColor = encodeScalar((L + R + B + T - div) * 0.25);
}
`

// velocity -= grad(pressure), producing a near divergence-free field.
const gradientShader = shaderPrelude + `
uniform sampler2D uVelocity;
uniform sampler2D uPressure;

void main() {
    float L = decodeScalar(texture(uPressure, uvAt(vec2(-1.0, 0.0))));
    float R = decodeScalar(texture(uPressure, uvAt(vec2(1.0, 0.0))));
    float B = decodeScalar(texture(uPressure, uvAt(vec2(0.0, -1.0))));
    float T = decodeScalar(texture(uPressure, uvAt(vec2(0.0, 1.0))));

    vec2 vel = decodeVel(texture(uVelocity, uvAt(vec2(0.0, 0.0))));
    vel -= 0.5 * vec2(R - L, T - B);
    finalColor = encodeVel(vel);
}
`

// Semi-Lagrangian backward trace of the velocity field through itself.
const advectVelocityShader = shaderPrelude + `
uniform sampler2D uVelocity;
uniform sampler2D uSource;
uniform float dt;
uniform float dissipation;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    vec2 vel = decodeVel(texture(uVelocity, uv));
    vec2 coord = uv - dt * vel / resolution;
    vec2 sampled = decodeVel(texture(uSource, coord));
    finalColor = encodeVel(sampled / (1.0 + dissipation * dt));
}
`

// Same trace for dye, which is stored as raw RGB.
const advectDyeShader = shaderPrelude + `
uniform sampler2D uVelocity;
uniform sampler2D uSource;
uniform float dt;
uniform float dissipation;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    vec2 vel = decodeVel(texture(uVelocity, uv));
    vec2 coord = uv - dt * vel / resolution;
    vec3 sampled = texture(uSource, coord).rgb;
    finalColor = vec4(sampled / (1.0 + dissipation * dt), 1.0);
}
`

// Gaussian point splat onto the velocity field.
const splatVelocityShader = shaderPrelude + `
uniform sampler2D uSource;
uniform vec2 point;
uniform vec2 delta;
uniform float radius;
uniform float strength;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    float aspect = resolution.x / resolution.y;
    vec2 p = uv - point;
    p.x *= aspect;
    float gauss = exp(-dot(p, p) / (radius * radius));

    vec2 vel = decodeVel(texture(uSource, uv));
    finalColor = encodeVel(vel + delta * gauss * strength);
}
`

// Gaussian point splat onto a dye field.
const splatDyeShader = shaderPrelude + `
uniform sampler2D uSource;
uniform vec2 point;
uniform vec3 color;
uniform float radius;
uniform float strength;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    float aspect = resolution.x / resolution.y;
    vec2 p = uv - point;
    p.x *= aspect;
    float gauss = exp(-dot(p, p) / (radius * radius));

    vec3 base = texture(uSource, uv).rgb;
    finalColor = vec4(base + color * gauss * strength, 1.0);
}
`

// Blossoming splat: tight Gaussian core plus a half-weight exponential halo
// that widens with the diffusion rate.
const blossomShader = shaderPrelude + `
uniform sampler2D uSource;
uniform vec2 point;
uniform vec3 color;
uniform float radius;
uniform float strength;
uniform float diffusionRate;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    float aspect = resolution.x / resolution.y;
    vec2 p = uv - point;
    p.x *= aspect;
    float d2 = dot(p, p);
    float dist = sqrt(d2);

    float coreRadius = radius * 0.3;
    float haloRadius = radius * (1.0 + diffusionRate * 2.0);
    float core = exp(-d2 / (coreRadius * coreRadius));
    float halo = exp(-dist / haloRadius) * 0.5;

    vec3 base = texture(uSource, uv).rgb;
    finalColor = vec4(base + color * (core + halo) * strength, 1.0);
}
`

// Expanding annulus of outward velocity, wave-modulated around the ring.
const rippleShader = shaderPrelude + `
uniform sampler2D uSource;
uniform vec2 point;
uniform float ringRadius;
uniform float ringWidth;
uniform float strength;
uniform float waveFrequency;
uniform float waveAmplitude;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    float aspect = resolution.x / resolution.y;
    vec2 p = uv - point;
    p.x *= aspect;
    float dist = length(p);

    vec2 vel = decodeVel(texture(uSource, uv));
    if (dist > 1e-6) {
        float ring = smoothstep(ringWidth, 0.0, abs(dist - ringRadius));
        float angle = atan(p.y, p.x);
        float wave = 1.0 + waveAmplitude * sin(angle * waveFrequency);
        vel += p / dist * strength * ring * wave;
    }
    finalColor = encodeVel(vel);
}
`

// Wet-on-wet mix of two dye layers: midpoint between the subtractive pigment
// blend and a straight average.
const compositeShader = shaderPrelude + `
uniform sampler2D uBase;
uniform sampler2D uOverlay;

void main() {
    vec2 uv = uvAt(vec2(0.0, 0.0));
    vec3 base = texture(uBase, uv).rgb;
    vec3 overlay = texture(uOverlay, uv).rgb;
    vec3 subtractive = base * (1.0 - overlay) + overlay * (1.0 - base);
    vec3 average = 0.5 * (base + overlay);
    finalColor = vec4(0.5 * (subtractive + average), 1.0);
}
`
