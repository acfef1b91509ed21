package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/config"
	"github.com/mogaika/p3d_offset/offset"
	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	exitOk = iota
	exitBadFlag
	exitNoPath
	exitNoInput
	exitDeclined
	exitInvalid
	exitIO
)

// confirm asks until it gets a Y or N. End of input means no.
func confirm(in *bufio.Reader, out io.Writer, question string) bool {
	for {
		fmt.Fprintf(out, "%s [Y/N]: ", question)
		s, err := in.ReadString('\n')
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "Y", "YES":
			return true
		case "N", "NO":
			return false
		}
		if err != nil {
			return false
		}
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("p3doffset", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var inPath, outPath, order, presetPath string
	var force, verbose bool
	var t, r [3]float64
	fs.StringVar(&inPath, "i", "", "Input p3d file")
	fs.StringVar(&outPath, "o", "", "Output p3d file")
	fs.BoolVar(&force, "f", false, "Overwrite output without asking")
	fs.Float64Var(&t[0], "x", 0, "Offset along X")
	fs.Float64Var(&t[1], "y", 0, "Offset along Y")
	fs.Float64Var(&t[2], "z", 0, "Offset along Z")
	fs.Float64Var(&r[0], "rx", 0, "Rotation around X in degrees")
	fs.Float64Var(&r[1], "ry", 0, "Rotation around Y in degrees")
	fs.Float64Var(&r[2], "rz", 0, "Rotation around Z in degrees")
	fs.StringVar(&order, "order", config.DefaultAxisOrder, "Rotation axis order, leftmost axis applied last")
	fs.StringVar(&presetPath, "preset", "", "YAML or TOML preset with offset, rotation and order, flags override it")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return exitBadFlag
	}
	utils.SetVerbose(verbose)

	if inPath == "" || outPath == "" {
		fs.PrintDefaults()
		return exitNoPath
	}
	if _, err := os.Stat(inPath); err != nil {
		utils.LogError("Input file not found", "path", inPath)
		return exitNoInput
	}

	var translation, rotation mgl32.Vec3
	if presetPath != "" {
		preset, err := config.LoadPreset(presetPath)
		if err != nil {
			utils.LogError("Can't load preset", "err", err)
			return exitBadFlag
		}
		translation, rotation = preset.Offset, preset.Rotation
		if preset.Order != "" {
			order = preset.Order
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for i, axis := range []string{"x", "y", "z"} {
		if set[axis] {
			translation[i] = float32(t[i])
		}
		if set["r"+axis] {
			rotation[i] = float32(r[i])
		}
	}
	if set["order"] {
		order = fs.Lookup("order").Value.String()
	}

	tr, err := offset.NewTransform(translation, rotation, order)
	if err != nil {
		utils.LogError("Invalid transform", "err", err)
		return exitInvalid
	}

	if _, err := os.Stat(outPath); err == nil && !force {
		if !confirm(bufio.NewReader(stdin), stdout, fmt.Sprintf("%q already exists. Overwrite?", outPath)) {
			utils.LogError("Output exists, not overwriting", "path", outPath)
			return exitDeclined
		}
	}

	f, err := p3d.Load(inPath)
	if err != nil {
		utils.LogError("Can't load input", "err", err)
		return exitIO
	}
	if err := offset.Apply(f, tr); err != nil {
		utils.LogError("Can't apply transform", "err", err)
		return exitInvalid
	}
	if err := f.Save(outPath); err != nil {
		utils.LogError("Can't save output", "err", err)
		return exitIO
	}
	utils.LogInfo("done", "input", inPath, "output", outPath, "transform", tr)
	return exitOk
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}
