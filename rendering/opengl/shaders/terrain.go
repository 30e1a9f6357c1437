package shaders

const terrainVertex = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 2) in vec2 texCoord;

out vec2 vUV;

void main() {
    vUV = texCoord;
    gl_Position = vec4(position, 1.0);
}
`

const terrainControl = `
#version 410 core

layout (vertices = 4) out;

in vec2 vUV[];
out vec2 tcUV[];

uniform float tessLevel;

void main() {
    gl_out[gl_InvocationID].gl_Position = gl_in[gl_InvocationID].gl_Position;
    tcUV[gl_InvocationID] = vUV[gl_InvocationID];

    if (gl_InvocationID == 0) {
        gl_TessLevelOuter[0] = tessLevel;
        gl_TessLevelOuter[1] = tessLevel;
        gl_TessLevelOuter[2] = tessLevel;
        gl_TessLevelOuter[3] = tessLevel;
        gl_TessLevelInner[0] = tessLevel;
        gl_TessLevelInner[1] = tessLevel;
    }
}
`

// terrainEvaluation displaces the patch grid by the height texture. The
// grid spans [0, size-1] and sample i sits at texel centre (i+0.5)/size.
const terrainEvaluation = `
#version 410 core

layout (quads, fractional_odd_spacing, ccw) in;

in vec2 tcUV[];

uniform sampler2D heightMap;
uniform float heightSize;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 worldPos;
out vec3 fragNormal;
out vec2 texUV;
out float height;

float sampleHeight(vec2 grid) {
    return texture(heightMap, (grid + 0.5) / heightSize).r;
}

void main() {
    float u = gl_TessCoord.x;
    float v = gl_TessCoord.y;

    vec4 p = mix(mix(gl_in[0].gl_Position, gl_in[1].gl_Position, u),
                 mix(gl_in[3].gl_Position, gl_in[2].gl_Position, u), v);
    vec2 t = mix(mix(tcUV[0], tcUV[1], u), mix(tcUV[3], tcUV[2], u), v);

    vec2 grid = p.xz;
    float h = sampleHeight(grid);
    float hl = sampleHeight(grid - vec2(1.0, 0.0));
    float hr = sampleHeight(grid + vec2(1.0, 0.0));
    float hd = sampleHeight(grid - vec2(0.0, 1.0));
    float hu = sampleHeight(grid + vec2(0.0, 1.0));

    p.y += h;
    vec4 world = model * p;
    worldPos = world.xyz;
    fragNormal = normalize(vec3(hl - hr, 2.0, hd - hu));
    texUV = t * heightSize * 0.25;
    height = h;
    gl_Position = projection * view * world;
}
`
