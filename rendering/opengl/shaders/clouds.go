package shaders

// cloudDepthFragment writes linear distance from the eye.
const cloudDepthFragment = `
#version 410 core

in vec3 worldPos;
in vec3 fragNormal;
in vec2 texUV;
in float height;

out float distance;

uniform vec3 eye;

void main() {
    distance = length(worldPos - eye);
}
`

// raymarchFragment integrates the cloud box along the view ray through
// each covered pixel. The march stops at the box exit, at the prepass
// depth, or once transmittance falls below the cutoff.
const raymarchFragment = `
#version 410 core

in vec3 worldPos;
in vec3 fragNormal;
in vec2 texUV;
in float height;

out vec4 outColor;

uniform sampler3D density;
uniform sampler2D sceneDepth;
uniform vec2 screenSize;

uniform vec3 eye;
uniform vec3 boxMin;
uniform vec3 boxMax;
uniform vec3 lightDirection;
uniform vec3 lightColor;
uniform vec3 gasColor;
uniform float sigmaA;
uniform float sigmaS;
uniform float g;
uniform float densityScale;
uniform int samples;
uniform vec3 offset;

const float PI = 3.14159265;
const float transmittanceCutoff = 0.01;

float henyeyGreenstein(float cosTheta, float g) {
    float g2 = g * g;
    float denom = 1.0 + g2 - 2.0 * g * cosTheta;
    return (1.0 - g2) / (4.0 * PI * denom * sqrt(denom));
}

bool intersectBox(vec3 ro, vec3 rd, out float tNear, out float tFar) {
    vec3 inv = 1.0 / rd;
    vec3 t0 = (boxMin - ro) * inv;
    vec3 t1 = (boxMax - ro) * inv;
    vec3 lo = min(t0, t1);
    vec3 hi = max(t0, t1);
    tNear = max(max(lo.x, lo.y), lo.z);
    tFar = min(min(hi.x, hi.y), hi.z);
    return tFar >= max(tNear, 0.0);
}

void main() {
    vec3 rd = normalize(worldPos - eye);
    float tNear, tFar;
    if (!intersectBox(eye, rd, tNear, tFar)) {
        discard;
    }
    tNear = max(tNear, 0.0);
    tFar = min(tFar, texture(sceneDepth, gl_FragCoord.xy / screenSize).r);
    if (tFar <= tNear) {
        outColor = vec4(0.0);
        return;
    }

    int n = max(samples, 1);
    float dt = (tFar - tNear) / float(n);
    float sigmaT = sigmaA + sigmaS;
    vec3 size = boxMax - boxMin;
    float phase = henyeyGreenstein(dot(rd, -normalize(lightDirection)), g);
    vec3 light = lightColor * gasColor;

    float transmittance = 1.0;
    vec3 col = vec3(0.0);
    for (int i = 0; i < n; i++) {
        float t = tNear + (float(i) + 0.5) * dt;
        vec3 uvw = (eye + rd * t - boxMin) / size + offset;
        float rho = max(0.0, texture(density, uvw).r) * densityScale;
        if (rho <= 0.0) {
            continue;
        }
        col += light * transmittance * phase * sigmaS * rho * dt;
        transmittance *= exp(-sigmaT * rho * dt);
        if (transmittance < transmittanceCutoff) {
            break;
        }
    }
    outColor = vec4(col, 1.0 - transmittance);
}
`

// cloudBlendFragment composites the clouds over the scene.
const cloudBlendFragment = `
#version 410 core

in vec2 uv;
out vec4 outColor;

uniform sampler2D scene;
uniform sampler2D clouds;

void main() {
    vec4 s = texture(scene, uv);
    vec4 c = texture(clouds, uv);
    outColor = vec4(s.rgb * (1.0 - c.a) + c.rgb, 1.0);
}
`
