// hello-probe checks that a hello-http server is up and answering its
// contract.  It exits 0 when the server is ready and 1 otherwise, so it
// can serve directly as a container HEALTHCHECK or a CI readiness gate
// (use --attempts > 1 to wait for a server that is still starting).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/iliyamo/hello-http/internal/probe"
)

// Program option vars:
var cfg probe.Config

// Parse args:
func init() {
	cfg.AddToFlagSet(pflag.CommandLine)
	pflag.Parse()
}

func main() {
	if err := probe.Run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
