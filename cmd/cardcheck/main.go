// Command cardcheck exercises the card entry engine from a terminal: it
// classifies numbers, validates complete cards, replays typing into a form
// and mints client tokens for the API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
