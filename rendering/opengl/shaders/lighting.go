package shaders

// litFragment shades terrain and props: per light ambient, shadowed Lambert
// diffuse and Blinn-Phong specular, spot lights inside a smooth cone.
// Terrain blends grass, rock and snow by height band.
const litFragment = `
#version 410 core

struct Light {
    int kind;
    vec4 ambient;
    vec4 diffuse;
    vec4 specular;
    float specularPower;
    vec3 position;
    vec3 direction;
};

in vec3 worldPos;
in vec3 fragNormal;
in vec2 texUV;
in float height;

out vec4 outColor;

uniform Light lights[2];
uniform mat4 lightViewProjection[2];
uniform sampler2DShadow shadowMap0;
uniform sampler2DShadow shadowMap1;
uniform bool shadowsEnabled;
uniform vec3 eye;

uniform bool terrain;
uniform sampler2D albedoMap;
uniform sampler2D grassMap;
uniform sampler2D rockMap;
uniform sampler2D snowMap;
uniform vec2 bands[3];
uniform float bandBlend;

const float spotOuterCos = 0.80;
const float spotInnerCos = 0.95;
const float shadowBias = 0.0015;

float visibility(int i) {
    if (!shadowsEnabled) {
        return 1.0;
    }
    vec4 lp = lightViewProjection[i] * vec4(worldPos, 1.0);
    vec3 c = lp.xyz / lp.w * 0.5 + 0.5;
    if (any(lessThan(c, vec3(0.0))) || any(greaterThan(c, vec3(1.0)))) {
        return 1.0;
    }
    vec3 ref = vec3(c.xy, c.z - shadowBias);
    return i == 0 ? texture(shadowMap0, ref) : texture(shadowMap1, ref);
}

vec3 bandWeights(float h) {
    vec3 w;
    for (int i = 0; i < 3; i++) {
        float fadeIn = smoothstep(bands[i].x - bandBlend, bands[i].x + bandBlend, h);
        float fadeOut = 1.0 - smoothstep(bands[i].y - bandBlend, bands[i].y + bandBlend, h);
        w[i] = fadeIn * fadeOut;
    }
    float sum = w.x + w.y + w.z;
    if (sum > 0.0) {
        return w / sum;
    }
    int nearest = 0;
    float best = 1e30;
    for (int i = 0; i < 3; i++) {
        float d = max(bands[i].x - h, 0.0) + max(h - bands[i].y, 0.0);
        if (d < best) {
            nearest = i;
            best = d;
        }
    }
    w = vec3(0.0);
    w[nearest] = 1.0;
    return w;
}

vec3 albedo() {
    if (!terrain) {
        return texture(albedoMap, texUV).rgb;
    }
    vec3 w = bandWeights(height);
    return texture(grassMap, texUV).rgb * w.x
         + texture(rockMap, texUV).rgb * w.y
         + texture(snowMap, texUV).rgb * w.z;
}

void main() {
    vec3 n = normalize(fragNormal);
    vec3 v = normalize(eye - worldPos);

    vec3 lit = vec3(0.0);
    vec3 spec = vec3(0.0);
    for (int i = 0; i < 2; i++) {
        Light l = lights[i];
        lit += l.ambient.rgb;

        vec3 toLight;
        float cone = 1.0;
        if (l.kind == 1) {
            toLight = normalize(l.position - worldPos);
            cone = smoothstep(spotOuterCos, spotInnerCos, dot(-toLight, normalize(l.direction)));
        } else {
            toLight = -normalize(l.direction);
        }

        float ndotl = max(dot(n, toLight), 0.0);
        if (ndotl == 0.0 || cone == 0.0) {
            continue;
        }
        float vis = visibility(i);
        lit += l.diffuse.rgb * ndotl * cone * vis;

        vec3 h = normalize(toLight + v);
        spec += l.specular.rgb * pow(max(dot(n, h), 0.0), l.specularPower) * cone * vis;
    }

    outColor = vec4(clamp(albedo() * lit + spec, 0.0, 1.0), 1.0);
}
`
