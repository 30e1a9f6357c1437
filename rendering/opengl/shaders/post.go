package shaders

const luminance = `
float luminance(vec3 c) {
    return dot(c, vec3(0.2126, 0.7152, 0.0722));
}
`

const brightFragment = `
#version 410 core

in vec2 uv;
out vec4 outColor;

uniform sampler2D source;
uniform float threshold;
uniform float knee;
` + luminance + `
void main() {
    vec3 c = texture(source, uv).rgb;
    outColor = vec4(c * smoothstep(threshold - knee, threshold + knee, luminance(c)), 1.0);
}
`

// blurFragment is a two-dimensional Gaussian in one pass. texel is the
// reciprocal of the output size.
const blurFragment = `
#version 410 core

in vec2 uv;
out vec4 outColor;

uniform sampler2D source;
uniform vec2 texel;
uniform float weights[5];

void main() {
    vec3 sum = vec3(0.0);
    for (int y = -4; y <= 4; y++) {
        for (int x = -4; x <= 4; x++) {
            float w = weights[abs(x)] * weights[abs(y)];
            sum += texture(source, uv + vec2(x, y) * texel).rgb * w;
        }
    }
    outColor = vec4(sum, 1.0);
}
`

const blendFragment = `
#version 410 core

in vec2 uv;
out vec4 outColor;

uniform sampler2D base;
uniform sampler2D glow;

void main() {
    outColor = vec4(texture(base, uv).rgb + texture(glow, uv).rgb, 1.0);
}
`

// gradeFragment applies tint, brightness, contrast and saturation in order.
const gradeFragment = `
#version 410 core

in vec2 uv;
out vec4 outColor;

uniform sampler2D source;
uniform vec3 tint;
uniform float tintStrength;
uniform float brightness;
uniform float contrast;
uniform float saturation;
` + luminance + `
void main() {
    vec3 c = texture(source, uv).rgb;
    c = mix(c, tint, clamp(tintStrength, 0.0, 1.0));
    c *= brightness;
    c = (c - 0.5) * contrast + 0.5;
    float l = luminance(c);
    c = vec3(l) + (c - vec3(l)) * saturation;
    outColor = vec4(clamp(c, 0.0, 1.0), 1.0);
}
`

const compositeFragment = `
#version 410 core

in vec2 uv;
out vec4 outColor;

uniform sampler2D source;

void main() {
    outColor = vec4(texture(source, uv).rgb, 1.0);
}
`
