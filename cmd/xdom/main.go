// Command xdom renders and serves a demo application built on the xdom
// runtime.
package main

import (
	"os"

	"github.com/go-drift/xdom/cmd/xdom/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
