// Command snapfs is the CLI entry point for the content-addressed
// snapshot store implemented by this module.
package main

import "github.com/snapfs-vcs/snapfs/internal/cliapp"

func main() {
	cliapp.Execute()
}
