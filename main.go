// ABOUTME: Entry point for the stayhub CLI
// ABOUTME: Terminal client for the StayHub booking marketplace

package main

import (
	"fmt"
	"os"

	"stayhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
