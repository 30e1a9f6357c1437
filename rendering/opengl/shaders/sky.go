package shaders

// skyFragment grades the dome from centre to apex by elevation and adds a
// glow around the sun.
const skyFragment = `
#version 410 core

in vec3 worldPos;
in vec3 fragNormal;
in vec2 texUV;
in float height;

out vec4 outColor;

uniform vec3 eye;
uniform vec4 centerColor;
uniform vec4 apexColor;
uniform vec3 sunPosition;
uniform vec3 sunColor;
uniform float sunIntensity;

void main() {
    vec3 dir = normalize(worldPos - eye);
    float elevation = clamp(dir.y, 0.0, 1.0);
    vec3 sky = mix(centerColor.rgb, apexColor.rgb, elevation);

    vec3 toSun = normalize(sunPosition - eye);
    float glow = pow(max(dot(dir, toSun), 0.0), 64.0) * sunIntensity;
    outColor = vec4(sky + sunColor * glow, 1.0);
}
`

const sunFragment = `
#version 410 core

in vec3 worldPos;
in vec3 fragNormal;
in vec2 texUV;
in float height;

out vec4 outColor;

uniform sampler2D albedoMap;
uniform vec3 sunColor;

void main() {
    outColor = vec4(texture(albedoMap, texUV).rgb * sunColor, 1.0);
}
`
