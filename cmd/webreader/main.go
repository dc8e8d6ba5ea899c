// Command webreader exposes the web_fetch and web_search tools on the command
// line. It is mostly useful to try the pipeline on real pages and to inspect
// the schemas advertised to models.
//
// Usage:
//
//	webreader fetch https://go.dev/doc --mode text --max-chars 2000
//	webreader search "golang generics" --count 3
//	webreader call web_fetch '{"url": "https://go.dev"}'
//	webreader tools
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errToolFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
