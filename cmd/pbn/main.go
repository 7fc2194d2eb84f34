// pbn - paint-by-number palette and grid generator
//
// pbn reduces an image to a small numbered palette and tags every pixel
// with the colour it should be painted with.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/pbn/internal/cli"

func main() {
	cli.Execute()
}
