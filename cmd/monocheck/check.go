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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/wdamron/mono"
	"github.com/wdamron/mono/layout"
	"github.com/wdamron/mono/script"
	"github.com/wdamron/mono/types"
)

// errFailed is returned when at least one script contains a type error.
var errFailed = errors.New("type check failed")

// check runs each script with its own checker and writes the reports to w in argument
// order. Scripts are checked concurrently; no type-variables are shared between them.
func check(ctx context.Context, cfg Config, paths []string, w io.Writer) error {
	outputs := make([]bytes.Buffer, len(paths))
	failed := make([]bool, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Jobs)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := checkFile(cfg, path, &outputs[i])
			if err != nil {
				return err
			}
			failed[i] = !ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	anyFailed := false
	for i := range outputs {
		if _, err := outputs[i].WriteTo(w); err != nil {
			return errors.WithStack(err)
		}
		anyFailed = anyFailed || failed[i]
	}
	if anyFailed {
		return errFailed
	}
	return nil
}

// checkFile reports on a single script. It returns false if a constraint failed.
func checkFile(cfg Config, path string, w io.Writer) (bool, error) {
	s, err := script.LoadFile(path)
	if err != nil {
		return false, err
	}
	c := mono.NewChecker()
	c.SetLogger(slog.Default().With("script", path))
	result, err := s.Run(c)
	if err != nil {
		return false, err
	}
	slog.Debug("checked", "script", path, "constraints", c.Constraints())

	fmt.Fprintf(w, "== %s\n", path)
	if f := result.Failure; f != nil {
		if f.Slot != "" {
			fmt.Fprintf(w, "slot %s: %s = %s: %v\n", f.Slot, f.Left, f.Right, f.Err)
		} else {
			fmt.Fprintf(w, "constraint %d: %s = %s: %v\n", f.Index+1, f.Left, f.Right, f.Err)
		}
		return false, nil
	}

	l := layout.New(layout.Options{PointerSize: cfg.PointerSize})
	for _, r := range result.Resolved {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: unresolved (%s)\n", r.Slot, r.Type)
			continue
		}
		if err := writeResolution(w, l, cfg, r); err != nil {
			return false, errors.Wrapf(err, "%s: slot %s", path, r.Slot)
		}
	}
	return true, nil
}

func writeResolution(w io.Writer, l *layout.Layout, cfg Config, r script.Resolution) error {
	c := r.Concrete
	if !cfg.Layout {
		fmt.Fprintf(w, "%s: %s\n", r.Slot, c)
	} else {
		size, err := l.Size(c)
		if err != nil {
			return err
		}
		align, err := l.Align(c)
		if err != nil {
			return err
		}
		alloc, err := l.AllocOp(c)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s size=%d align=%d class=%s", r.Slot, c, size, align, l.Class(c))
		if c.Kind != types.KindStruct {
			load, err := l.LoadOp(c)
			if err != nil {
				return err
			}
			store, err := l.StoreOp(c)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, " load=%s store=%s", load, store)
		}
		fmt.Fprintf(w, " alloc=%q\n", alloc)
		if c.Kind == types.KindStruct {
			sl, err := l.Struct(c.Struct)
			if err != nil {
				return err
			}
			for i, f := range sl.Fields {
				fmt.Fprintf(w, "  +%d %s: %s\n", f.Offset, f.Name, c.Struct.Fields[i].Type)
			}
		}
	}
	if cfg.Dump {
		fmt.Fprintf(w, "%# v\n", pretty.Formatter(c))
	}
	return nil
}
