package main

import (
	"os"

	"github.com/halcyon-engine/go-bvh/cmd"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "bvhbench"
	app.Usage = "build, benchmark and validate SAH bounding volume hierarchies"
	app.Version = "0.0.1"
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
			Name:  "bench",
			Usage: "build a tree over random spheres and measure ray throughput",
			Description: `
Generate a seeded random sphere cloud, build a BVH over it and fire random
rays through the tree, then print build and traversal statistics.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "primitives, n",
					Value: 100000,
					Usage: "number of random spheres to index",
				},
				cli.IntFlag{
					Name:  "rays, r",
					Value: 100000,
					Usage: "number of random rays to trace",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "seed for sphere and ray generation",
				},
			},
			Action: cmd.Bench,
		},
		{
			Name:  "validate",
			Usage: "check tree invariants and brute-force equivalence over many seeds",
			Description: `
For every seed, build a tree over a small random sphere cloud, verify the
index partition and box tightness invariants, and compare traversal results
against brute-force intersection for a batch of random rays.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "primitives, n",
					Value: 20,
					Usage: "number of random spheres per seed",
				},
				cli.IntFlag{
					Name:  "rays, r",
					Value: 100,
					Usage: "number of random rays per seed",
				},
				cli.IntFlag{
					Name:  "seeds",
					Value: 100,
					Usage: "number of seeds to test",
				},
			},
			Action: cmd.Validate,
		},
	}

	app.Run(os.Args)
}
