// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/flowguardian/internal/icons"
)

func main() { cli.Main(new(app)) }

type app struct {
	src    string
	dir    string
	filter icons.Filter
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.src, "src", "icon.png", "Source icon `file`.")
	fs.StringVar(&a.dir, "dir", ".", "Write icons to `dir`.")
	fs.Var(&a.filter, "filter", "Resampling filter (lanczos or catmullrom).")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) != 0 {
		return fmt.Errorf("%w: no arguments expected", cli.ErrInvalidArgs)
	}

	err := icons.Generate(ctx, &icons.Config{
		Src:    a.src,
		Dir:    a.dir,
		Filter: a.filter,
		Stdout: env.Stdout,
	})
	if errors.Is(err, icons.ErrSourceMissing) {
		fmt.Fprintf(env.Stdout, "✗ %s not found!\n", a.src)
		return nil
	}
	return err
}
