// Command brume mirrors a remote collection of meeting transcript
// documents to a local directory tree and provides offline full-text
// and semantic search over the result.
package main

import (
	"fmt"
	"os"

	"github.com/brume-cli/brume/internal/cli"
	"github.com/brume-cli/brume/internal/core/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(domain.KindOf(err).ExitCode())
	}
}
