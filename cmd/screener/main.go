// Command screener serves the résumé screening API and runs its offline tasks.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
