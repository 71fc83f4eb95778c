// Package main runs the MM5740 encoder monitor on stdin.
package main

import (
	"fmt"
	"os"

	"github.com/Grazfather/mm5740"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if len(os.Args) != 1 {
		fmt.Println("usage: mm5740-monitor < commands")
		os.Exit(1)
	}

	fmt.Printf("mm5740 monitor %s\n", buildinfo.Version(version, commit, date))
	monitor := mm5740.NewMonitor(os.Stdout)
	monitor.Start(os.Stdin)
}
