//go:build !gl

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The 3D viewer of tileworld requires the gl build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags gl ./cmd/worldview` or build with `-tags gl`.")
	os.Exit(2)
}
