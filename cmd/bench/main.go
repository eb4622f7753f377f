// hello-bench load-checks a hello-http server against its public
// contract.  It sends a configurable number of concurrent GET requests,
// verifies every response byte-for-byte, and prints latency statistics.
// The exit code is non-zero when any response failed or mismatched.
package main

import (
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/iliyamo/hello-http/internal/bench"
)

// Program option vars:
var cfg bench.Config

// Parse args:
func init() {
	cfg.AddToFlagSet(pflag.CommandLine)
	pflag.Parse()
}

func main() {
	summary, err := bench.NewRunner(cfg).Run()
	if err != nil {
		log.Fatal(err)
	}
	if err := summary.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}
	if !summary.AllOK() {
		os.Exit(1)
	}
}
