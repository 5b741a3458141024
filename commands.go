package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/geometry"
	"github.com/Arideno/graphics-engine/pkg/loaders"
	"github.com/Arideno/graphics-engine/pkg/renderer"
	"github.com/Arideno/graphics-engine/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Meshes of a described scene are placed by the description itself
var errMeshWithDescription = errors.New("--mesh and --transform cannot be combined with --scene; add the mesh to the scene description")

// sceneOptions collects the flags shared by the render and console commands
type sceneOptions struct {
	ScenePath string
	MeshPath  string
	Translate core.Vec3
	Width     int
	Height    int
	FOV       float64
	Workers   int
	BVH       geometry.BVHConfig
	NoBVH     bool
	Progress  bool

	// Flags given explicitly override values from a scene description
	overrideSize bool
	overrideFOV  bool
	overrideBVH  bool
	setTranslate bool
}

func sceneOptionsFromContext(ctx *cli.Context) (sceneOptions, error) {
	translate, err := parseTranslation(ctx.String("transform"))
	if err != nil {
		return sceneOptions{}, err
	}

	opts := sceneOptions{
		ScenePath: ctx.String("scene"),
		MeshPath:  ctx.String("mesh"),
		Translate: translate,
		Width:     ctx.Int("width"),
		Height:    ctx.Int("height"),
		FOV:       ctx.Float64("fov"),
		Workers:   ctx.Int("workers"),
		BVH:       geometry.DefaultBVHConfig(),
		NoBVH:     ctx.Bool("no-bvh"),
		Progress:  !ctx.Bool("no-progress"),

		overrideSize: ctx.IsSet("width") || ctx.IsSet("height"),
		overrideFOV:  ctx.IsSet("fov"),
		overrideBVH:  ctx.IsSet("bvh-depth") || ctx.IsSet("leaf-size"),
		setTranslate: ctx.IsSet("transform"),
	}
	opts.BVH.MaxDepth = ctx.Int("bvh-depth")
	opts.BVH.LeafSize = ctx.Int("leaf-size")

	if opts.Width <= 0 || opts.Height <= 0 {
		return sceneOptions{}, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FOV <= 0 || opts.FOV >= 180 {
		return sceneOptions{}, fmt.Errorf("field of view must be between 0 and 180 degrees, got %v", opts.FOV)
	}
	return opts, nil
}

// parseTranslation parses "tx,ty,tz"
func parseTranslation(value string) (core.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("invalid translation %q; expected tx,ty,tz", value)
	}

	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid translation %q: %w", value, err)
		}
		coords[i] = v
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// createScene builds the scene selected by the options, including its BVH
func createScene(opts sceneOptions) (*scene.Scene, error) {
	if opts.ScenePath != "" {
		if opts.MeshPath != "" || opts.setTranslate {
			return nil, errMeshWithDescription
		}
		return createDescribedScene(opts)
	}

	s := scene.NewDefaultScene(opts.Width, opts.Height)
	if opts.overrideFOV {
		s.Camera = renderer.NewCamera(core.NewVec3(0, 0, 0), opts.FOV, float64(opts.Width)/float64(opts.Height), opts.Height)
	}

	if opts.MeshPath != "" {
		triangles, err := loaders.LoadMesh(opts.MeshPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load mesh: %w", err)
		}

		s.AddMesh(triangles, geometry.Translate(opts.Translate))
		logger.Infof("loaded %d triangles from %s", len(triangles), opts.MeshPath)
	}

	if !opts.NoBVH {
		s.BuildBVH(opts.BVH)
	}
	return s, nil
}

func createDescribedScene(opts sceneOptions) (*scene.Scene, error) {
	desc, err := scene.LoadDescription(opts.ScenePath)
	if err != nil {
		return nil, err
	}

	if opts.overrideSize {
		desc.Camera.Width = opts.Width
		desc.Camera.Height = opts.Height
	}
	if opts.overrideFOV {
		desc.Camera.FOV = opts.FOV
	}
	if opts.overrideBVH {
		desc.BVH.MaxDepth = opts.BVH.MaxDepth
		desc.BVH.LeafSize = opts.BVH.LeafSize
	}
	if opts.NoBVH {
		desc.BVH.Disabled = true
	}

	return desc.Build()
}

// createOutputDir makes sure the directory of the output file exists
func createOutputDir(outPath string) (string, error) {
	outputDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return outputDir, nil
}

func newRaytracer(s *scene.Scene, opts sceneOptions, progress io.Writer) (*renderer.Raytracer, error) {
	config := renderer.DefaultRenderConfig()
	if opts.Workers > 0 {
		config.NumWorkers = opts.Workers
	}
	if opts.Progress {
		config.ProgressOutput = progress
	}
	return renderer.NewRaytracer(s, config, logger)
}

// RenderFrame renders the scene to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := sceneOptionsFromContext(ctx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		return errors.New("missing output filename")
	}
	if _, err := createOutputDir(out); err != nil {
		return err
	}

	s, err := createScene(opts)
	if err != nil {
		return err
	}

	rt, err := newRaytracer(s, opts, os.Stderr)
	if err != nil {
		return err
	}

	frame, stats := rt.Render()
	if err := loaders.WritePNG(out, frame.Pix, frame.Width, frame.Height); err != nil {
		return err
	}

	displayRenderStats(s, stats)
	logger.Noticef("render saved as %s", out)
	return nil
}

// RenderConsole renders the scene as text to the application writer.
func RenderConsole(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := sceneOptionsFromContext(ctx)
	if err != nil {
		return err
	}

	s, err := createScene(opts)
	if err != nil {
		return err
	}

	rt, err := newRaytracer(s, opts, os.Stderr)
	if err != nil {
		return err
	}

	text, stats := rt.RenderText()
	fmt.Fprintln(ctx.App.Writer, text)

	displayRenderStats(s, stats)
	return nil
}

// ListScenes prints the available scenes as a table.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	dir := "scenes"
	if ctx.NArg() > 0 {
		dir = ctx.Args().First()
	}

	scenes, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Type", "Shapes", "Description"})
	for _, info := range scenes {
		table.Append([]string{
			info.ID,
			info.Name,
			info.Type,
			fmt.Sprintf("%d", info.Shapes),
			info.Description,
		})
	}
	table.Render()
	return nil
}

func displayRenderStats(s *scene.Scene, stats renderer.RenderStats) {
	var buf bytes.Buffer
	writeRenderStats(&buf, s, stats)
	logger.Noticef("render statistics\n%s", buf.String())
}

func writeRenderStats(w io.Writer, s *scene.Scene, stats renderer.RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})

	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", stats.Width, stats.Height)})
	table.Append([]string{"Shapes", fmt.Sprintf("%d", s.GetPrimitiveCount())})
	if s.BVH != nil {
		bvhStats := s.BVH.Stats()
		table.Append([]string{"BVH nodes", fmt.Sprintf("%d (%d leaves)", bvhStats.Nodes, bvhStats.Leaves)})
		table.Append([]string{"BVH depth", fmt.Sprintf("%d", bvhStats.Depth)})
		table.Append([]string{"BVH shape refs", fmt.Sprintf("%d", bvhStats.ShapeRefs)})
	} else {
		table.Append([]string{"BVH", "disabled"})
	}
	table.Append([]string{"Workers", fmt.Sprintf("%d", stats.Workers)})
	table.Append([]string{"Hit pixels", fmt.Sprintf("%d (%02.1f %%)", stats.HitPixels, stats.HitRatio()*100)})
	table.Append([]string{"Failed pixels", fmt.Sprintf("%d", stats.FailedPixels)})
	table.Append([]string{"Pixels/s", fmt.Sprintf("%.0f", stats.PixelsPerSecond())})
	table.SetFooter([]string{"TOTAL", stats.Duration.String()})

	table.Render()
}
