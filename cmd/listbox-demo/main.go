// Command listbox-demo shows a selecting list box over a generated list.
package main

import "log"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
