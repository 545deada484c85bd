// Command tokenctl issues and checks API bearer tokens from the command line.
// It reads the same JWT_* environment (and .env file) as the server.
package main

import (
	"fmt"
	"os"

	"github.com/trustworkers/api/internal/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
