// Command vmafplot plots per-frame VMAF/ETC scores from run_vmaf / run_etc XML reports.
//
// Reports sharing a title are drawn on one figure (at most 10 per figure). Click a plot to read
// the per-frame score envelope, or pass --savefig to write the single figure to disk and print
// its statistics.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
