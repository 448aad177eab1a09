// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command monocheck runs constraint scripts and reports the inferred type of each
// requested slot.
//
//	monocheck [flags] file...
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if err != errFailed {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:           "monocheck [flags] file...",
		Short:         "Infer the types of slots in constraint scripts",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ConfigFile != "" {
				fileCfg := defaultConfig()
				if err := loadConfig(cfg.ConfigFile, &fileCfg); err != nil {
					return err
				}
				mergeFlags(cmd, &cfg, fileCfg)
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			setupLogging(stderr, cfg.Debug)
			return check(cmd.Context(), cfg, args, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "TOML configuration file")
	flags.IntVar(&cfg.PointerSize, "pointer-size", cfg.PointerSize, "size of references in bytes (4 or 8)")
	flags.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "number of scripts checked concurrently")
	flags.BoolVar(&cfg.Layout, "layout", false, "print the size, alignment and field offsets of resolved types")
	flags.BoolVar(&cfg.Dump, "dump", false, "print the structure of resolved types")
	flags.BoolVar(&cfg.Debug, "debug", false, "trace constraints")

	return cmd
}

// mergeFlags takes values from the config file for every flag not set on the command line.
func mergeFlags(cmd *cobra.Command, cfg *Config, fileCfg Config) {
	flags := cmd.Flags()
	if !flags.Changed("pointer-size") {
		cfg.PointerSize = fileCfg.PointerSize
	}
	if !flags.Changed("jobs") {
		cfg.Jobs = fileCfg.Jobs
	}
	if !flags.Changed("layout") {
		cfg.Layout = fileCfg.Layout
	}
	if !flags.Changed("dump") {
		cfg.Dump = fileCfg.Dump
	}
	if !flags.Changed("debug") {
		cfg.Debug = fileCfg.Debug
	}
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})))
}

// run is used by tests to execute the command with the given arguments.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
