// File: main.go
package main

import (
	"huddle/cmd"
)

// version is set by goreleaser during build.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
