// Package viewer ties the scene, the orbit controls, the asset loader and the UI together.
// A Viewer is owned by the frame loop; none of its methods are safe for concurrent use.
package viewer

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/assets"
	"model-viewer/internal/ctxlog"
	"model-viewer/internal/orbit"
	"model-viewer/internal/primitives"
	"model-viewer/internal/scene"
	"model-viewer/internal/ui"
)

// Toolbar button ids.
const (
	CubeButton   = "cubeBtn"
	SphereButton = "sphereBtn"
	TorusButton  = "torusBtn"
	TeapotButton = "teapotBtn"
	AssetButton  = "busBtn"
	ResetButton  = "resetBtn"

	BannerID  = "error-message"
	LoadingID = "loading-indicator"
)

// AssetCameraPosition is where the camera moves once a load settles, to frame larger models.
var AssetCameraPosition = rl.NewVector3(0, 2, 8)

// Factory builds primitive nodes.
type Factory interface {
	Primitive(kind primitives.Kind) *scene.Node
	Placeholder() *scene.Node
}

// ModelBuilder turns a resolved asset file into a normalized node on the main thread.
type ModelBuilder interface {
	Build(path string) (*scene.Node, error)
}

// AssetLoader resolves assets in the background, one request at a time.
type AssetLoader interface {
	Start(ctx context.Context, name string) bool
	Poll() (assets.Result, bool)
	Loading() bool
}

// Deps are the collaborators of a Viewer.
type Deps struct {
	Scene   *scene.Scene
	Factory Factory
	Builder ModelBuilder
	Loader  AssetLoader
	UI      *ui.Engine
}

// Options tune a Viewer. Zero values take the defaults noted.
type Options struct {
	AssetName      string
	AssetLabel     string // button text, default "Load Model"
	AutoRotate     bool
	AutoRotateStep float32       // radians per frame, default 0.005
	BannerTimeout  time.Duration // default 10s
	Controls       orbit.Options
	ShowInfo       bool
	Now            func() time.Time
}

var kindButtons = map[primitives.Kind]string{
	primitives.Cube:   CubeButton,
	primitives.Sphere: SphereButton,
	primitives.Torus:  TorusButton,
	primitives.Teapot: TeapotButton,
}

// Viewer is the application state: one displayed object, the camera and the controls.
type Viewer struct {
	ctx  context.Context
	log  *slog.Logger
	opts Options

	scene    *scene.Scene
	controls *orbit.Controls
	factory  Factory
	builder  ModelBuilder
	loader   AssetLoader

	ui      *ui.Engine
	toolbar *ui.Toolbar
	banner  *ui.Banner
	loading *ui.Indicator
	info    *ui.Inspector

	selected string // button id of the latest object choice
	source   string // file of the displayed asset
	captured bool   // pointer went down on the UI; orbit input is ignored until release
	size     [2]int32
}

// New builds a viewer showing the cube. The logger is taken from ctx and ctx is passed to
// asset requests.
func New(ctx context.Context, d Deps, opts Options) *Viewer {
	if opts.AutoRotateStep == 0 {
		opts.AutoRotateStep = 0.005
	}
	if opts.AssetLabel == "" {
		opts.AssetLabel = "Load Model"
	}
	v := &Viewer{
		ctx:     ctx,
		log:     ctxlog.FromContext(ctx),
		opts:    opts,
		scene:   d.Scene,
		factory: d.Factory,
		builder: d.Builder,
		loader:  d.Loader,
		ui:      d.UI,
		toolbar: ui.NewToolbar([]ui.Button{
			{ID: CubeButton, Label: "Cube"},
			{ID: SphereButton, Label: "Sphere"},
			{ID: TorusButton, Label: "Torus"},
			{ID: TeapotButton, Label: "Teapot"},
			{ID: AssetButton, Label: opts.AssetLabel},
			{ID: ResetButton, Label: "Reset View"},
		}),
		banner:  ui.NewBanner(BannerID, opts.BannerTimeout, opts.Now),
		loading: ui.NewIndicator(LoadingID, "Loading model..."),
		info:    ui.NewInspector(),
	}
	v.controls = orbit.New(&v.scene.Camera, opts.Controls)

	nodes := v.toolbar.Nodes()
	nodes = append(nodes, v.info.Nodes()...)
	nodes = append(nodes, v.loading.Node(), v.banner.Node())
	v.ui.SetNodes(nodes)

	v.Show(primitives.Cube)
	return v
}

// Show replaces the displayed object with a primitive and hides the error banner.
func (v *Viewer) Show(kind primitives.Kind) {
	id, ok := kindButtons[kind]
	if !ok {
		v.log.Warn("unknown primitive", "kind", kind)
		return
	}
	v.selectButton(id)
	v.install(v.factory.Primitive(kind), "")
	v.banner.Hide()
	v.log.Debug("showing primitive", "kind", kind)
}

// LoadAsset starts loading the configured asset. It returns false and changes nothing when a
// load is already in flight. The scene stays empty until the load settles.
func (v *Viewer) LoadAsset() bool {
	if v.loader.Loading() {
		v.log.Debug("asset load already in flight")
		return false
	}
	if !v.loader.Start(v.ctx, v.opts.AssetName) {
		return false
	}
	v.selectButton(AssetButton)
	v.install(nil, "")
	v.banner.Hide()
	v.loading.SetVisible(true)
	v.log.Info("loading asset", "name", v.opts.AssetName)
	return true
}

// ResetCamera restores the default camera pose.
func (v *Viewer) ResetCamera() {
	v.controls.Reset()
}

// Click dispatches a toolbar button by id.
func (v *Viewer) Click(id string) {
	switch id {
	case CubeButton:
		v.Show(primitives.Cube)
	case SphereButton:
		v.Show(primitives.Sphere)
	case TorusButton:
		v.Show(primitives.Torus)
	case TeapotButton:
		v.Show(primitives.Teapot)
	case AssetButton:
		v.LoadAsset()
	case ResetButton:
		v.ResetCamera()
	}
}

// Resize lays the UI out for a render surface of w x h pixels.
func (v *Viewer) Resize(w, h int32) {
	v.size = [2]int32{w, h}
	v.ui.Layout(w, h)
	v.toolbar.Layout(v.ui)
	v.info.Layout(v.ui)
}

// Update advances one frame: banner timeout, input, finished loads, auto-rotation, controls.
func (v *Viewer) Update(in Input) {
	v.banner.Update()
	v.handlePointer(in)
	for _, key := range in.Keys {
		v.handleKey(key)
	}
	v.drainLoads()
	if cur := v.scene.Current(); cur != nil && v.opts.AutoRotate && !cur.Loaded {
		cur.Rotation += v.opts.AutoRotateStep
	}
	if !v.captured {
		v.controls.Apply(in.Orbit, float32(v.size[1]))
	}
	v.controls.Update()
	v.info.Update(v.opts.ShowInfo, v.selection())
}

// Draw renders the scene and the UI. Call inside BeginDrawing.
func (v *Viewer) Draw() {
	v.scene.Draw()
	v.ui.Draw()
}

// Close releases the displayed object.
func (v *Viewer) Close() {
	v.install(nil, "")
}

func (v *Viewer) handlePointer(in Input) {
	if in.Pressed {
		if hit := v.ui.HitTest(in.Pointer); hit != nil {
			v.captured = true
			v.Click(hit.ID)
		}
	}
	if !in.Down {
		v.captured = false
	}
}

func (v *Viewer) handleKey(key int32) {
	if i := int(key - rl.KeyOne); i >= 0 && i < len(primitives.Kinds) {
		v.Show(primitives.Kinds[i])
		return
	}
	switch key {
	case rl.KeyFive:
		v.LoadAsset()
	case rl.KeyR:
		v.ResetCamera()
	case rl.KeyI:
		v.opts.ShowInfo = !v.opts.ShowInfo
	}
}

// drainLoads installs a finished load, or the red placeholder when it failed. A load that
// finishes after the user picked something else is dropped.
func (v *Viewer) drainLoads() {
	res, ok := v.loader.Poll()
	if !ok {
		return
	}
	v.loading.SetVisible(false)
	if v.selected != AssetButton {
		v.log.Info("discarding asset load, selection changed", "name", res.Name, "err", res.Err)
		return
	}
	err := res.Err
	if err == nil {
		var node *scene.Node
		if node, err = v.builder.Build(res.Path); err == nil {
			v.install(node, res.Path)
			v.banner.Hide()
			v.log.Info("asset loaded", "name", res.Name, "scale", node.Scale)
		}
	}
	if err != nil {
		v.log.Error("asset load failed", "name", res.Name, "err", err)
		v.install(v.factory.Placeholder(), "")
		v.banner.Show(assets.BannerText(err))
	}
	v.controls.SetPose(AssetCameraPosition, scene.DefaultCameraTarget)
}

func (v *Viewer) selectButton(id string) {
	v.selected = id
	v.toolbar.SetActive(id)
}

// install attaches n (or nothing) and releases the node it displaced.
func (v *Viewer) install(n *scene.Node, source string) {
	prev := v.scene.Replace(n)
	if prev != nil && prev != n {
		prev.Release()
	}
	v.source = source
}

func (v *Viewer) selection() ui.Selection {
	cur := v.scene.Current()
	if cur == nil {
		return ui.Selection{Name: "none", Kind: "-"}
	}
	return ui.Selection{Name: cur.Name, Kind: cur.Kind, Scale: cur.Transform().Scale, Source: v.source}
}

// Scene returns the scene being displayed.
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Banner returns the error banner.
func (v *Viewer) Banner() *ui.Banner { return v.banner }

// Toolbar returns the button row.
func (v *Viewer) Toolbar() *ui.Toolbar { return v.toolbar }

// Loading reports whether the loading indicator is shown.
func (v *Viewer) Loading() bool { return v.loading.Visible() }
