package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
	"github.com/Arideno/graphics-engine/pkg/lights"
	"github.com/Arideno/graphics-engine/pkg/loaders"
	"github.com/Arideno/graphics-engine/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// Defaults applied to descriptions that leave camera fields out
const (
	DefaultWidth  = 400
	DefaultHeight = 200
	DefaultFOV    = 90.0
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	Origin Vec3Cfg `json:"origin"`
	FOV    float64 `json:"fov,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

// TransformCfg is applied as scale, then rotation about X, Y and Z, then
// translation. Rotation is in degrees for JSON (friendlier than radians).
// Spheres only move with their center, so scale is rejected on sphere
// entries; set the radius instead.
type TransformCfg struct {
	Translate Vec3Cfg  `json:"translate"`
	RotateDeg Vec3Cfg  `json:"rotateDeg"`
	Scale     *Vec3Cfg `json:"scale,omitempty"` // defaults to 1 on each axis
}

type SphereCfg struct {
	Center    Vec3Cfg       `json:"center"`
	Radius    float64       `json:"radius"`
	Transform *TransformCfg `json:"transform,omitempty"`
}

type PlaneCfg struct {
	Normal    Vec3Cfg       `json:"normal"`
	Point     Vec3Cfg       `json:"point"`
	Transform *TransformCfg `json:"transform,omitempty"`
}

type TriangleCfg struct {
	Vertices  [3]Vec3Cfg    `json:"vertices"`
	Normals   []Vec3Cfg     `json:"normals,omitempty"` // none or one per vertex
	Transform *TransformCfg `json:"transform,omitempty"`
}

type MeshCfg struct {
	Path      string        `json:"path"` // .obj or .ply, relative to the description file
	Transform *TransformCfg `json:"transform,omitempty"`
}

type LightCfg struct {
	Type      string  `json:"type,omitempty"` // "directional" (default)
	Direction Vec3Cfg `json:"direction"`
}

type BVHCfg struct {
	Disabled bool `json:"disabled,omitempty"`
	MaxDepth int  `json:"maxDepth,omitempty"`
	LeafSize int  `json:"leafSize,omitempty"`
}

// Description is a scene written as JSON
type Description struct {
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Camera      CameraCfg     `json:"camera"`
	Spheres     []SphereCfg   `json:"spheres,omitempty"`
	Planes      []PlaneCfg    `json:"planes,omitempty"`
	Triangles   []TriangleCfg `json:"triangles,omitempty"`
	Meshes      []MeshCfg     `json:"meshes,omitempty"`
	Lights      []LightCfg    `json:"lights,omitempty"`
	BVH         BVHCfg        `json:"bvh"`

	baseDir string // Directory mesh paths are resolved against
}

// LoadDescription reads a scene description file
func LoadDescription(path string) (*Description, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene description: %w", err)
	}
	defer file.Close()

	desc, err := ParseDescription(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	desc.baseDir = filepath.Dir(path)
	return desc, nil
}

// ParseDescription decodes a description and fills in defaults. Mesh paths
// are resolved against the working directory.
func ParseDescription(r io.Reader) (*Description, error) {
	var desc Description

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return nil, err
	}

	// Defaults
	if desc.Camera.FOV <= 0 {
		desc.Camera.FOV = DefaultFOV
	}
	if desc.Camera.Width <= 0 {
		desc.Camera.Width = DefaultWidth
	}
	if desc.Camera.Height <= 0 {
		desc.Camera.Height = DefaultHeight
	}
	if desc.BVH.MaxDepth <= 0 {
		desc.BVH.MaxDepth = geometry.DefaultBVHConfig().MaxDepth
	}
	if desc.BVH.LeafSize <= 0 {
		desc.BVH.LeafSize = geometry.DefaultBVHConfig().LeafSize
	}

	if len(desc.Spheres)+len(desc.Planes)+len(desc.Triangles)+len(desc.Meshes) == 0 {
		return nil, ErrEmptyDescription
	}
	return &desc, nil
}

// BVHConfig returns the build settings requested by the description
func (d *Description) BVHConfig() geometry.BVHConfig {
	config := geometry.DefaultBVHConfig()
	config.MaxDepth = d.BVH.MaxDepth
	config.LeafSize = d.BVH.LeafSize
	return config
}

// Build constructs the scene. Meshes are loaded from disk; the BVH is built
// unless the description disables it.
func (d *Description) Build() (*Scene, error) {
	camera := renderer.NewCamera(
		d.Camera.Origin.Vec3(),
		d.Camera.FOV,
		float64(d.Camera.Width)/float64(d.Camera.Height),
		d.Camera.Height,
	)
	s := New(camera)

	for i, sc := range d.Spheres {
		if sc.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be > 0, got %v", i, sc.Radius)
		}
		if sc.Transform != nil && sc.Transform.Scale != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, ErrSphereScale)
		}
		s.AddShape(applyTransform(geometry.NewSphere(sc.Center.Vec3(), sc.Radius), sc.Transform))
	}

	for i, pc := range d.Planes {
		if pc.Normal.Vec3().LengthSquared() == 0 {
			return nil, fmt.Errorf("plane %d: normal must be non-zero", i)
		}
		s.AddShape(applyTransform(geometry.NewPlane(pc.Normal.Vec3(), pc.Point.Vec3()), pc.Transform))
	}

	for i, tc := range d.Triangles {
		triangle, err := tc.build()
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		s.AddShape(applyTransform(triangle, tc.Transform))
	}

	for i, mc := range d.Meshes {
		path := mc.Path
		if !filepath.IsAbs(path) && d.baseDir != "" {
			path = filepath.Join(d.baseDir, path)
		}
		triangles, err := loaders.LoadMesh(path)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		m := mgl64.Ident4()
		if mc.Transform != nil {
			m = mc.Transform.Matrix()
		}
		s.AddMesh(triangles, m)
	}

	for i, lc := range d.Lights {
		switch lc.Type {
		case "", string(lights.LightTypeDirectional):
			s.AddLight(lights.NewDirectional(lc.Direction.Vec3()))
		default:
			return nil, fmt.Errorf("light %d: %w %q", i, ErrUnknownLightType, lc.Type)
		}
	}

	if !d.BVH.Disabled {
		s.BuildBVH(d.BVHConfig())
	}
	return s, nil
}

func (tc TriangleCfg) build() (*geometry.Triangle, error) {
	v0, v1, v2 := tc.Vertices[0].Vec3(), tc.Vertices[1].Vec3(), tc.Vertices[2].Vec3()

	switch len(tc.Normals) {
	case 0:
		return geometry.NewTriangle(v0, v1, v2), nil
	case 3:
		return geometry.NewTriangleWithNormals(v0, v1, v2,
			tc.Normals[0].Vec3(), tc.Normals[1].Vec3(), tc.Normals[2].Vec3()), nil
	default:
		return nil, fmt.Errorf("expected 0 or 3 normals, got %d", len(tc.Normals))
	}
}

// Matrix returns the combined transform
func (tc *TransformCfg) Matrix() mgl64.Mat4 {
	scale := Vec3Cfg{1, 1, 1}
	if tc.Scale != nil {
		scale = *tc.Scale
	}
	return geometry.Compose(
		geometry.Scale(scale.Vec3()),
		geometry.RotateX(tc.RotateDeg[0]),
		geometry.RotateY(tc.RotateDeg[1]),
		geometry.RotateZ(tc.RotateDeg[2]),
		geometry.Translate(tc.Translate.Vec3()),
	)
}

func applyTransform(shape geometry.Shape, tc *TransformCfg) geometry.Shape {
	if tc == nil {
		return shape
	}
	return shape.Transform(tc.Matrix())
}
