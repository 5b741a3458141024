package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// newApp assembles the command line interface
func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sceneFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Usage: "JSON scene description; the built-in default scene is used when empty",
		},
		cli.StringFlag{
			Name:  "mesh, m",
			Usage: "OBJ or PLY mesh to add to the default scene",
		},
		cli.StringFlag{
			Name:  "transform, t",
			Value: "0,0,-2",
			Usage: "mesh translation as tx,ty,tz",
		},
		cli.IntFlag{
			Name:  "width",
			Value: 400,
			Usage: "frame width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 200,
			Usage: "frame height",
		},
		cli.Float64Flag{
			Name:  "fov",
			Value: 90,
			Usage: "vertical field of view in degrees",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "number of render workers (0 = CPU count)",
		},
		cli.IntFlag{
			Name:  "bvh-depth",
			Value: 16,
			Usage: "maximum BVH depth",
		},
		cli.IntFlag{
			Name:  "leaf-size",
			Value: 8,
			Usage: "maximum number of shapes per BVH leaf",
		},
		cli.BoolFlag{
			Name:  "no-bvh",
			Usage: "intersect every shape linearly instead of building a BVH",
		},
		cli.BoolFlag{
			Name:  "no-progress",
			Usage: "do not display a progress bar",
		},
	}

	app := cli.NewApp()
	app.Name = "graphics-engine"
	app.Usage = "render scenes with a BVH accelerated ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a frame to a PNG file",
			Description: `
Render one primary ray per pixel and save the result as a PNG image.

The scene is either the built-in default scene, optionally extended with a
mesh, or a JSON scene description.`,
			Flags: append(sceneFlags,
				cli.StringFlag{
					Name:  "out, o",
					Value: "output.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: RenderFrame,
		},
		{
			Name:   "console",
			Usage:  "render a frame as text to the standard output",
			Flags:  sceneFlags,
			Action: RenderConsole,
		},
		{
			Name:      "scenes",
			Usage:     "list the built-in scenes and the JSON scene descriptions in a directory",
			ArgsUsage: "[directory]",
			Action:    ListScenes,
		},
	}

	return app
}
