// Command syncdemo runs producer/consumer and barrier scenarios on the
// syncx and chanx primitives.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
