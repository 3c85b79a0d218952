package lighting

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragColor = vertexColor;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec4 ambient;
uniform vec3 keyDir;
uniform vec3 fillDir;
uniform float keyIntensity;
uniform float fillIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform mat4 lightVP;
uniform sampler2D shadowMap;
uniform float shadowStrength;
uniform float shadowTexel;
out vec4 finalColor;
vec3 shade(vec3 N, vec3 V, vec3 L, float intensity, vec3 albedo) {
  float NdotL = max(dot(N, L), 0.0);
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  return (albedo * NdotL + vec3(spec) * (NdotL > 0.0 ? 1.0 : 0.0)) * intensity;
}
float shadowed(vec3 N, vec3 L) {
  if (shadowStrength <= 0.0) return 0.0;
  vec4 p = lightVP * vec4(fragPosition, 1.0);
  vec3 c = (p.xyz / p.w + 1.0) / 2.0;
  if (c.x < 0.0 || c.x > 1.0 || c.y < 0.0 || c.y > 1.0 || c.z > 1.0) return 0.0;
  float bias = max(0.0002 * (1.0 - dot(N, L)), 0.00002) + 0.00001;
  int hits = 0;
  for (int x = -1; x <= 1; x++) {
    for (int y = -1; y <= 1; y++) {
      if (c.z - bias > texture(shadowMap, c.xy + vec2(x, y) * shadowTexel).r) hits++;
    }
  }
  return shadowStrength * float(hits) / 9.0;
}
void main() {
  vec4 texel = texture(texture0, fragTexCoord) * colDiffuse * fragColor;
  vec3 albedo = texel.rgb;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 L = normalize(keyDir);
  vec3 color = ambient.rgb * albedo;
  color += shade(N, V, L, keyIntensity, albedo) * (1.0 - shadowed(N, L));
  color += shade(N, V, normalize(fillDir), fillIntensity, albedo);
  finalColor = vec4(color, texel.a);
}
`
)
