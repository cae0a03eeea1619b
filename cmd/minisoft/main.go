// Command minisoft is the MiniSoft batch compiler's CLI driver.
package main

import (
	"fmt"
	"os"

	"github.com/minisoft-lang/minisoft/cmd/minisoft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
