// refbucket provisions and validates the reference buckets backing the omics
// analysis cluster. We structure it as a single executable with subcommands
// (clone, verify, ensure) as is common for cloud utilities.
package main

import "github.com/daylilybio/refbucket/cmd"

func main() {
	cmd.Execute()
}
