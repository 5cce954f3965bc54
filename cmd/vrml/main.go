// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vrml loads, runs and converts VRML worlds.
package main

import (
	"os"

	"cogentcore.org/vrml/cmd/vrml/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
