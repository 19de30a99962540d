//go:build !windows

package diag

import (
	"fmt"
	"os"
)

func outputDebugString(s string) {
	fmt.Fprint(os.Stderr, s)
}

func alert(caption, text string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", caption, text)
}
