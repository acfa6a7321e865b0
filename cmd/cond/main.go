package main

import (
	"fmt"
	"os"

	"github.com/brimdata/cond/cmd/cond/root"
)

func main() {
	if err := root.Cond.Exec(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
