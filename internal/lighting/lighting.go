// Package lighting owns the viewer's lights: a white ambient term, a key light from (5,5,5)
// that casts shadows and a weaker fill light from (-5,-5,-5). Every lit model in the scene
// shares one shader compiled by a Rig.
package lighting

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultShadowMapSize is the edge of the square shadow depth texture in texels.
const DefaultShadowMapSize = 2048

const (
	keyIntensity  = float32(0.8)
	fillIntensity = float32(0.4)
	// shadowSlot is the texture unit the shadow map is bound to during the lit pass. Material
	// maps use units 0-11 and raylib models only fill the low ones.
	shadowSlot = 10
	// shadowFrustum is the height in world units covered by the key light's orthographic view.
	shadowFrustum = 14
)

var (
	// KeyPosition is where the key light sits; it shines toward the origin.
	KeyPosition  = rl.NewVector3(5, 5, 5)
	fillPosition = rl.NewVector3(-5, -5, -5)
	ambientColor = [4]float32{0.6, 0.6, 0.6, 1}
)

// Surface is the Blinn-Phong response of a material.
type Surface struct {
	Power    float32
	Strength float32
}

// Matte is the response of loaded assets and the ground.
var Matte = Surface{Power: 16, Strength: 0.2}

// Options configures a Rig. A zero ShadowMapSize takes DefaultShadowMapSize.
type Options struct {
	Shadows       bool
	ShadowMapSize int32
}

type uniforms struct {
	viewPos, ambient, keyDir, fillDir int32
	keyIntensity, fillIntensity       int32
	specularPower, specularStrength   int32
	lightVP, shadowMap                int32
	shadowStrength, shadowTexel       int32
}

// Rig compiles the lit shader and renders the key light's shadow map. GPU resources are
// created on first use, after the window exists. All methods must run on the main thread.
type Rig struct {
	opts Options

	shader  rl.Shader
	loaded  bool
	invalid bool
	loc     uniforms

	shadow      rl.RenderTexture2D
	shadowReady bool
	shadowBad   bool
	lightVP     rl.Matrix
	// drawn is set by ShadowPass and consumed by the next EndLit.
	drawn bool
	bound bool
}

// New returns a Rig. Nothing touches the GPU until a model is lit or drawn.
func New(opts Options) *Rig {
	if opts.ShadowMapSize <= 0 {
		opts.ShadowMapSize = DefaultShadowMapSize
	}
	return &Rig{opts: opts}
}

// Shadows reports whether the key light casts shadows.
func (r *Rig) Shadows() bool { return r.opts.Shadows }

// ShadowMapSize returns the shadow texture edge in texels.
func (r *Rig) ShadowMapSize() int32 { return r.opts.ShadowMapSize }

// LightCamera is the key light's view: orthographic, from KeyPosition toward the origin.
func (r *Rig) LightCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   KeyPosition,
		Target:     rl.Vector3{},
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       shadowFrustum,
		Projection: rl.CameraOrthographic,
	}
}

// Shader compiles the lit shader on first call. The second result is false when compilation
// failed; models then keep raylib's default unlit shader.
func (r *Rig) Shader() (rl.Shader, bool) {
	if r.loaded {
		return r.shader, true
	}
	if r.invalid {
		return rl.Shader{}, false
	}
	s := rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(s) {
		r.invalid = true
		return rl.Shader{}, false
	}
	r.shader = s
	r.loaded = true
	r.loc = uniforms{
		viewPos:          rl.GetShaderLocation(s, "viewPos"),
		ambient:          rl.GetShaderLocation(s, "ambient"),
		keyDir:           rl.GetShaderLocation(s, "keyDir"),
		fillDir:          rl.GetShaderLocation(s, "fillDir"),
		keyIntensity:     rl.GetShaderLocation(s, "keyIntensity"),
		fillIntensity:    rl.GetShaderLocation(s, "fillIntensity"),
		specularPower:    rl.GetShaderLocation(s, "specularPower"),
		specularStrength: rl.GetShaderLocation(s, "specularStrength"),
		lightVP:          rl.GetShaderLocation(s, "lightVP"),
		shadowMap:        rl.GetShaderLocation(s, "shadowMap"),
		shadowStrength:   rl.GetShaderLocation(s, "shadowStrength"),
		shadowTexel:      rl.GetShaderLocation(s, "shadowTexel"),
	}
	key := direction(KeyPosition)
	fill := direction(fillPosition)
	amb := ambientColor
	setVec(s, r.loc.ambient, amb[:], rl.ShaderUniformVec4)
	setVec(s, r.loc.keyDir, key[:], rl.ShaderUniformVec3)
	setVec(s, r.loc.fillDir, fill[:], rl.ShaderUniformVec3)
	setFloat(s, r.loc.keyIntensity, keyIntensity)
	setFloat(s, r.loc.fillIntensity, fillIntensity)
	setFloat(s, r.loc.shadowTexel, 1/float32(r.opts.ShadowMapSize))
	setFloat(s, r.loc.shadowStrength, 0)
	// raylib-go only takes float slices; the sampler unit is passed as raw int bits.
	if r.loc.shadowMap >= 0 {
		rl.SetShaderValue(s, r.loc.shadowMap, []float32{math.Float32frombits(shadowSlot)}, rl.ShaderUniformInt)
	}
	r.applySurface(Matte)
	return s, true
}

// Light gives every material of model the lit shader. Material maps, including the albedo
// texture and color, are left as loaded.
func (r *Rig) Light(model *rl.Model) {
	if model.MaterialCount == 0 {
		return
	}
	s, ok := r.Shader()
	if !ok {
		return
	}
	mats := model.GetMaterials()
	for i := range mats {
		mats[i].Shader = s
	}
}

// SetSurface sets the specular response for the next draws.
func (r *Rig) SetSurface(sf Surface) {
	if r.loaded {
		r.applySurface(sf)
	}
}

func (r *Rig) applySurface(sf Surface) {
	setFloat(r.shader, r.loc.specularPower, sf.Power)
	setFloat(r.shader, r.loc.specularStrength, sf.Strength)
}

// ShadowPass renders draw from the key light into the shadow depth texture. Call inside
// BeginDrawing and outside any 3D mode. It does nothing when shadows are off or the GPU
// cannot provide a depth framebuffer.
func (r *Rig) ShadowPass(draw func()) {
	if !r.opts.Shadows || !r.ensureShadowMap() {
		return
	}
	s, ok := r.Shader()
	if !ok {
		return
	}
	setFloat(s, r.loc.shadowStrength, 0)
	rl.BeginTextureMode(r.shadow)
	rl.ClearBackground(rl.White)
	rl.BeginMode3D(r.LightCamera())
	r.lightVP = rl.MatrixMultiply(rl.GetMatrixModelview(), rl.GetMatrixProjection())
	draw()
	rl.EndMode3D()
	rl.EndTextureMode()
	r.drawn = true
}

// BeginLit prepares the shader for the camera pass: the eye position for highlights and,
// when a shadow pass ran this frame, the light matrix and the bound shadow map.
func (r *Rig) BeginLit(viewPos rl.Vector3) {
	s, ok := r.Shader()
	if !ok {
		return
	}
	vp := [3]float32{viewPos.X, viewPos.Y, viewPos.Z}
	setVec(s, r.loc.viewPos, vp[:], rl.ShaderUniformVec3)
	if !r.drawn {
		setFloat(s, r.loc.shadowStrength, 0)
		return
	}
	if r.loc.lightVP >= 0 {
		rl.SetShaderValueMatrix(s, r.loc.lightVP, r.lightVP)
	}
	setFloat(s, r.loc.shadowStrength, 1)
	rl.ActiveTextureSlot(shadowSlot)
	rl.EnableTexture(r.shadow.Depth.ID)
	rl.ActiveTextureSlot(0)
	r.bound = true
}

// EndLit unbinds the shadow map. The next frame needs a fresh ShadowPass to cast shadows.
func (r *Rig) EndLit() {
	if r.bound {
		rl.ActiveTextureSlot(shadowSlot)
		rl.DisableTexture()
		rl.ActiveTextureSlot(0)
		r.bound = false
	}
	r.drawn = false
}

// Unload frees the shader and the shadow framebuffer.
func (r *Rig) Unload() {
	if r.loaded {
		rl.UnloadShader(r.shader)
	}
	if r.shadowReady {
		rl.UnloadFramebuffer(r.shadow.ID)
	}
	*r = Rig{opts: r.opts}
}

// ensureShadowMap creates a framebuffer with only a depth texture attached.
func (r *Rig) ensureShadowMap() bool {
	if r.shadowReady {
		return true
	}
	if r.shadowBad {
		return false
	}
	size := r.opts.ShadowMapSize
	id := rl.LoadFramebuffer()
	if id == 0 {
		r.shadowBad = true
		return false
	}
	rl.EnableFramebuffer(id)
	depth := rl.LoadTextureDepth(size, size, false)
	rl.FramebufferAttach(id, depth, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)
	ok := rl.FramebufferComplete(id)
	rl.DisableFramebuffer()
	if !ok {
		rl.UnloadFramebuffer(id)
		r.shadowBad = true
		return false
	}
	r.shadow = rl.RenderTexture2D{
		ID:      id,
		Texture: rl.Texture2D{Width: size, Height: size},
		Depth:   rl.Texture2D{ID: depth, Width: size, Height: size, Mipmaps: 1},
	}
	r.shadowReady = true
	return true
}

// direction is the unit vector from the origin toward p.
func direction(p rl.Vector3) [3]float32 {
	d := rl.Vector3Normalize(p)
	return [3]float32{d.X, d.Y, d.Z}
}

func setVec(s rl.Shader, loc int32, v []float32, typ rl.ShaderUniformDataType) {
	if loc >= 0 {
		rl.SetShaderValueV(s, loc, v, typ, 1)
	}
}

func setFloat(s rl.Shader, loc int32, v float32) {
	if loc >= 0 {
		rl.SetShaderValue(s, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}
