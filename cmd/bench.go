package cmd

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/halcyon-engine/go-bvh/bvh"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build a tree over a random sphere cloud and measure ray throughput.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	numPrimitives := ctx.Int("primitives")
	numRays := ctx.Int("rays")
	seed := ctx.Int64("seed")

	rng := rand.New(rand.NewSource(seed))
	spheres := randomSpheres(rng, numPrimitives)

	logger.Infof("building tree over %d spheres", numPrimitives)
	buildStart := time.Now()
	tree := bvh.Build(spheres)
	buildTime := time.Since(buildStart)

	logger.Infof("tracing %d rays", numRays)
	hits := 0
	traceStart := time.Now()
	for i := 0; i < numRays; i++ {
		origin := randomPoint(rng)
		dir := randomDirection(rng)
		if _, ok := tree.IntersectRay(origin, dir); ok {
			hits++
		}
	}
	traceTime := time.Since(traceStart)

	raysPerSec := float64(numRays) / traceTime.Seconds()
	printBenchStats(tree.Stats(), buildTime, traceTime, numRays, hits, raysPerSec)
	return nil
}

func printBenchStats(stats bvh.Stats, buildTime, traceTime time.Duration, numRays, hits int, raysPerSec float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Build time", fmt.Sprintf("%s", buildTime)})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", stats.Nodes)})
	table.Append([]string{"Leafs", fmt.Sprintf("%d", stats.Leafs)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)})
	table.Append([]string{"Max leaf size", fmt.Sprintf("%d", stats.MaxLeafSize)})
	table.Append([]string{"Rays traced", fmt.Sprintf("%d", numRays)})
	table.Append([]string{"Rays hit", fmt.Sprintf("%d", hits)})
	table.Append([]string{"Trace time", fmt.Sprintf("%s", traceTime)})
	table.Append([]string{"Rays/sec", fmt.Sprintf("%.0f", raysPerSec)})
	table.Render()

	logger.Noticef("benchmark statistics\n%s", buf.String())
}
