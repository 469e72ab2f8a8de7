package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sealcase/sealcase/pkg/enclosure"
	"github.com/sealcase/sealcase/pkg/export"
	"github.com/sealcase/sealcase/pkg/kernel"
	"github.com/sealcase/sealcase/pkg/kernel/sdfx"
	"github.com/sealcase/sealcase/pkg/script"
)

// buildFlags holds the flag values for the build command.
type buildFlags struct {
	paramsFile string // --params: YAML parameter file
	scriptFile string // --script: Lisp parameter script
	outDir     string // --out: output directory for STL files
	cells      int    // --cells: marching cubes resolution
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate box, lid and gasket STL files",
		Long: `Build runs the full pipeline for one parameter set and writes
enclosure_box.stl, enclosure_lid.stl and enclosure_gasket.stl into the
output directory. The lid is flipped onto its top face so both shell
parts print without support.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(flags)
		},
	}

	cmd.Flags().StringVar(&flags.paramsFile, "params", "", "YAML parameter file")
	cmd.Flags().StringVar(&flags.scriptFile, "script", "", "Lisp parameter script")
	cmd.Flags().StringVar(&flags.outDir, "out", ".", "Output directory")
	cmd.Flags().IntVar(&flags.cells, "cells", 0, "Tessellation resolution (cells per axis, 0 for default)")
	cmd.MarkFlagsMutuallyExclusive("params", "script")

	return cmd
}

func runBuild(flags *buildFlags) error {
	params, err := loadParams(flags)
	if err != nil {
		return err
	}

	k := sdfx.New()
	k.MeshCells = flags.cells

	result, err := enclosure.Build(k, params)
	if err != nil {
		return err
	}
	log.Printf("solved %d screw points, outer %.1f x %.1f x %.1f mm",
		len(result.Points), result.Dim.OuterWidth, result.Dim.OuterLength, result.Dim.OuterHeight)

	if err := os.MkdirAll(flags.outDir, 0o755); err != nil {
		return err
	}

	parts := []struct {
		name  string
		solid kernel.Solid
	}{
		{"enclosure_box", result.Box},
		{"enclosure_lid", printableLid(k, result.Lid)},
		{"enclosure_gasket", result.Gasket},
	}
	for _, part := range parts {
		mesh, err := k.ToMesh(part.solid)
		if err != nil {
			return fmt.Errorf("%s: %w", part.name, err)
		}
		mesh.Name = part.name
		path := filepath.Join(flags.outDir, part.name+".stl")
		if err := export.SaveSTL(path, mesh); err != nil {
			return fmt.Errorf("%s: %w", part.name, err)
		}
		log.Printf("wrote %s (%d triangles)", path, mesh.TriangleCount())
	}
	return nil
}

// loadParams resolves the parameter set from the selected source,
// defaults when neither flag is given.
func loadParams(flags *buildFlags) (enclosure.Params, error) {
	switch {
	case flags.paramsFile != "":
		data, err := os.ReadFile(flags.paramsFile)
		if err != nil {
			return enclosure.Params{}, err
		}
		return enclosure.DecodeParams(data)

	case flags.scriptFile != "":
		data, err := os.ReadFile(flags.scriptFile)
		if err != nil {
			return enclosure.Params{}, err
		}
		p, evalErrs, err := script.NewEngine().Evaluate(string(data))
		if err != nil {
			return enclosure.Params{}, err
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				log.Printf("%s: %s", flags.scriptFile, e.Error())
			}
			return enclosure.Params{}, errors.New("script evaluation failed")
		}
		return *p, nil
	}
	return enclosure.DefaultParams(), nil
}

// printableLid flips the lid onto its top face and rebases it to z=0 so
// it prints without support.
func printableLid(k kernel.Kernel, lid kernel.Solid) kernel.Solid {
	flipped := k.Rotate(lid, 180, 0, 0)
	min, _ := flipped.BoundingBox()
	return k.Translate(flipped, 0, 0, -min[2])
}
