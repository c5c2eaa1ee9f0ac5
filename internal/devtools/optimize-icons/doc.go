// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Optimize-icons generates the extension icons.

# Usage

	$ go tool optimize-icons [flags]

This tool reads the source icon (icon.png by default), crops away its
transparent padding and writes icon-16.png, icon-32.png, icon-48.png and
icon-128.png to the output directory. The 16 and 32 pixel icons are
slightly darkened and their semi-transparent edges are made more opaque
so they stay readable in the browser toolbar.

The source may be a PNG, JPEG, GIF, WebP, BMP or TIFF image. If it doesn't
exist, nothing is written.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
