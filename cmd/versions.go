// Handles the "refbucket versions" command

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the supported reference data versions",
	Run: func(cmd *cobra.Command, args []string) {
		defaultID := refMgr.Catalog.Default().ID
		for _, id := range refMgr.Catalog.VersionIDs() {
			if id == defaultID {
				fmt.Printf("%s (default)\n", id)
			} else {
				fmt.Println(id)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}
