// Package shaders holds the GLSL sources of every pass and compiles them
// into programs.
package shaders

// fullScreenVertex draws a viewport-covering triangle strip from
// gl_VertexID, no attributes bound.
const fullScreenVertex = `
#version 410 core

const vec2 positions[4] = vec2[](
    vec2(-1.0, -1.0),
    vec2( 1.0, -1.0),
    vec2(-1.0,  1.0),
    vec2( 1.0,  1.0)
);

out vec2 uv;

void main() {
    vec2 pos = positions[gl_VertexID];
    uv = pos * 0.5 + 0.5;
    gl_Position = vec4(pos, 0.0, 1.0);
}
`

// meshVertex transforms indexed meshes. The outputs match the terrain
// evaluation stage so both feed the same fragment shaders.
const meshVertex = `
#version 410 core

layout (location = 0) in vec3 position;
layout (location = 1) in vec3 normal;
layout (location = 2) in vec2 texCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 worldPos;
out vec3 fragNormal;
out vec2 texUV;
out float height;

void main() {
    vec4 world = model * vec4(position, 1.0);
    worldPos = world.xyz;
    fragNormal = mat3(transpose(inverse(model))) * normal;
    texUV = texCoord;
    height = world.y;
    gl_Position = projection * view * world;
}
`

// depthFragment writes nothing; the depth attachment does the work.
const depthFragment = `
#version 410 core

void main() {}
`
