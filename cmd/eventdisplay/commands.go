// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/hepvis/eventdisplay/base/iox/imagex"
	"github.com/hepvis/eventdisplay/xyz"
	"github.com/hepvis/eventdisplay/xyz/scenedoc"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newRenderCmd(f *flags) *cobra.Command {
	output := "snapshot.png"
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a snapshot of the configured scene to a .png or .webp file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openConfig(f)
			if err != nil {
				return err
			}
			e := newEngine(c)
			if err := buildScene(cmd.Context(), f, c, e); err != nil {
				return err
			}
			return snapshot(e, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "image file to write")
	return cmd
}

func newExportCmd(f *flags) *cobra.Command {
	output := "scene.json"
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the configured scene as a scene document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openConfig(f)
			if err != nil {
				return err
			}
			e := newEngine(c)
			if err := buildScene(cmd.Context(), f, c, e); err != nil {
				return err
			}
			doc, err := scenedoc.Export(e)
			if err != nil {
				return err
			}
			if err := doc.Save(output); err != nil {
				return err
			}
			slog.Info("exported scene", "file", output, "geometries", len(doc.Manifest.Geometries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "scene document file to write")
	return cmd
}

func newImportCmd(f *flags) *cobra.Command {
	output := "snapshot.png"
	cmd := &cobra.Command{
		Use:   "import <scene document>",
		Short: "Import a scene document and render a snapshot of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openConfig(f)
			if err != nil {
				return err
			}
			e := newEngine(c)
			if err := importScene(e, args[0]); err != nil {
				return err
			}
			if err := moveToView(f, c, e); err != nil {
				return err
			}
			return snapshot(e, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", output, "image file to write")
	return cmd
}

func newPickCmd(f *flags) *cobra.Command {
	var scene string
	cmd := &cobra.Command{
		Use:   "pick <x> <y>",
		Short: "Print the name and attributes of the object at the given pixel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 32)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[1], 32)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}
			c, err := openConfig(f)
			if err != nil {
				return err
			}
			e := newEngine(c)
			if scene != "" {
				err = importScene(e, scene)
				if err == nil {
					err = moveToView(f, c, e)
				}
			} else {
				err = buildScene(cmd.Context(), f, c, e)
			}
			if err != nil {
				return err
			}
			e.Step(0)
			res, ok := e.Pick(float32(x), float32(y), float32(c.Render.Width), float32(c.Render.Height))
			printPick(cmd.OutOrStdout(), res, ok)
			return nil
		},
	}
	cmd.Flags().StringVarP(&scene, "scene", "s", "", "scene document to pick in instead of the configured scene")
	return cmd
}

func importScene(e *xyz.Engine, filename string) error {
	doc, err := scenedoc.Open(filename)
	if err != nil {
		return err
	}
	return scenedoc.Import(e, doc)
}

// snapshot renders a frame of the given engine to the given image file.
func snapshot(e *xyz.Engine, filename string) error {
	img := e.Tick(frameDuration)
	if err := imagex.Save(img, filename); err != nil {
		return err
	}
	slog.Info("saved snapshot", "file", filename, "size", img.Bounds().Size())
	return nil
}

// printPick prints the given pick result, with the name in bold
// and the attribute names colored when w is a terminal.
func printPick(w io.Writer, res *xyz.PickResult, ok bool) {
	out := termenv.NewOutput(w)
	if !ok {
		fmt.Fprintln(w, out.String("nothing picked").Faint())
		return
	}
	fmt.Fprintln(w, out.String(res.Name).Bold())
	for _, a := range res.Attributes {
		fmt.Fprintf(w, "  %s: %v\n", out.String(a.Name).Foreground(out.Color("4")), a.Value)
	}
}
