// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command eventdisplay builds detector and event data scenes from a
// config file, renders snapshots of them, picks objects, and exports
// and imports scene documents.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hepvis/eventdisplay/base/logx"
	"github.com/spf13/cobra"
)

// flags are the global command line flags.
type flags struct {
	config      string
	verbose     bool
	veryVerbose bool
	quiet       bool
	demo        bool
	view        string
	timeout     int
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "eventdisplay",
		Short:        "Build, render and exchange detector event display scenes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.UserLevel = logx.LevelFromFlags(f.veryVerbose, f.verbose, f.quiet)
			logx.SetDefaultLogger()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "config file (.toml or .yaml)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "print info messages")
	pf.BoolVar(&f.veryVerbose, "vv", false, "print debug messages")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	pf.BoolVar(&f.demo, "demo", false, "add sample event data to the scene")
	pf.StringVar(&f.view, "view", "", "name of the preset view to move the camera to")
	pf.IntVar(&f.timeout, "timeout", 30, "seconds to wait for geometry imports")

	root.AddCommand(newRenderCmd(f), newExportCmd(f), newImportCmd(f), newPickCmd(f))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
