//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of Electron Architect requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/architect` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "The headless tools live in ./cmd/architect-cli.")
	os.Exit(2)
}
