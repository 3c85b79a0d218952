// Package orbit implements orbit camera controls: the camera circles a target point, dragging
// rotates or pans, the wheel dollies, and motion eases out with damping.
package orbit

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	polarEpsilon = 1e-4
	// dollyBase is the per-notch zoom factor before ZoomSpeed is applied.
	dollyBase = 0.95
	// panScale converts a screen-height fraction into world units at unit distance.
	panScale = 2
	// settleEpsilon is the residual motion below which damping stops.
	settleEpsilon = 1e-6
)

// Options configures Controls. Zero fields take the defaults noted.
type Options struct {
	Damping     float32 // fraction of pending motion applied per update; 0 disables damping
	MinDistance float32
	MaxDistance float32
	RotateSpeed float32 // default 1
	ZoomSpeed   float32 // default 1
}

// Input is the pointer motion collected during one frame, in pixels and wheel notches.
type Input struct {
	Rotate rl.Vector2
	Pan    rl.Vector2
	Wheel  float32
}

// Controls drives a rl.Camera3D. Position and Target are written by Update.
type Controls struct {
	opts Options
	cam  *rl.Camera3D

	savedPosition rl.Vector3
	savedTarget   rl.Vector3

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	pan        rl.Vector3
}

// New attaches controls to cam and saves its current pose as the reset pose.
func New(cam *rl.Camera3D, opts Options) *Controls {
	if opts.RotateSpeed == 0 {
		opts.RotateSpeed = 1
	}
	if opts.ZoomSpeed == 0 {
		opts.ZoomSpeed = 1
	}
	c := &Controls{opts: opts, cam: cam, scale: 1}
	c.SaveState()
	return c
}

// SaveState records the camera's pose as the one Reset returns to.
func (c *Controls) SaveState() {
	c.savedPosition = c.cam.Position
	c.savedTarget = c.cam.Target
}

// Reset restores the saved pose and drops any pending motion.
func (c *Controls) Reset() {
	c.SetPose(c.savedPosition, c.savedTarget)
}

// SetPose moves the camera and target immediately and drops any pending motion.
func (c *Controls) SetPose(position, target rl.Vector3) {
	c.cam.Position = position
	c.cam.Target = target
	c.stop()
	c.Update()
}

// Apply queues the rotation, pan and dolly for one frame of pointer input. viewportHeight is
// the render surface height in pixels; a drag across it turns the camera by one full turn.
func (c *Controls) Apply(in Input, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	if in.Rotate.X != 0 || in.Rotate.Y != 0 {
		c.deltaTheta -= 2 * math32.Pi * in.Rotate.X / viewportHeight * c.opts.RotateSpeed
		c.deltaPhi -= 2 * math32.Pi * in.Rotate.Y / viewportHeight * c.opts.RotateSpeed
	}
	if in.Pan.X != 0 || in.Pan.Y != 0 {
		c.queuePan(in.Pan, viewportHeight)
	}
	if in.Wheel != 0 {
		c.scale *= math32.Pow(dollyBase, in.Wheel*c.opts.ZoomSpeed)
	}
}

// queuePan converts a screen drag into a target translation in the camera plane, scaled so
// the point under the cursor follows it.
func (c *Controls) queuePan(d rl.Vector2, viewportHeight float32) {
	offset := rl.Vector3Subtract(c.cam.Position, c.cam.Target)
	dist := rl.Vector3Length(offset) * math32.Tan(c.cam.Fovy/2*rl.Deg2rad)
	forward := rl.Vector3Normalize(rl.Vector3Negate(offset))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.cam.Up))
	up := rl.Vector3CrossProduct(right, forward)
	move := rl.Vector3Add(
		rl.Vector3Scale(right, -panScale*d.X*dist/viewportHeight),
		rl.Vector3Scale(up, panScale*d.Y*dist/viewportHeight),
	)
	c.pan = rl.Vector3Add(c.pan, move)
}

// Update integrates pending motion into the camera pose. Call once per frame. With damping
// enabled only that fraction of the pending motion is applied and the rest decays.
func (c *Controls) Update() {
	offset := rl.Vector3Subtract(c.cam.Position, c.cam.Target)
	radius := rl.Vector3Length(offset)
	theta := math32.Atan2(offset.X, offset.Z)
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y/radius, -1, 1))
	}

	k := float32(1)
	if c.opts.Damping > 0 {
		k = c.opts.Damping
	}
	theta += c.deltaTheta * k
	phi += c.deltaPhi * k
	phi = clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius *= c.scale
	if c.opts.MaxDistance > 0 {
		radius = clamp(radius, c.opts.MinDistance, c.opts.MaxDistance)
	}

	c.cam.Target = rl.Vector3Add(c.cam.Target, rl.Vector3Scale(c.pan, k))

	sinPhi := math32.Sin(phi)
	c.cam.Position = rl.Vector3Add(c.cam.Target, rl.NewVector3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	))

	if c.opts.Damping > 0 {
		c.deltaTheta *= 1 - k
		c.deltaPhi *= 1 - k
		c.pan = rl.Vector3Scale(c.pan, 1-k)
		if math32.Abs(c.deltaTheta) < settleEpsilon && math32.Abs(c.deltaPhi) < settleEpsilon && rl.Vector3Length(c.pan) < settleEpsilon {
			c.deltaTheta, c.deltaPhi, c.pan = 0, 0, rl.Vector3{}
		}
	} else {
		c.deltaTheta, c.deltaPhi, c.pan = 0, 0, rl.Vector3{}
	}
	c.scale = 1
}

// Moving reports whether damped motion is still pending.
func (c *Controls) Moving() bool {
	return c.deltaTheta != 0 || c.deltaPhi != 0 || c.pan != (rl.Vector3{})
}

func (c *Controls) stop() {
	c.deltaTheta, c.deltaPhi, c.scale, c.pan = 0, 0, 1, rl.Vector3{}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
