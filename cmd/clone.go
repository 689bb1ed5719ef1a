// Handles the "refbucket clone" command

package cmd

import (
	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/daylilybio/refbucket/pkg/refmgr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var cloneCmdConfig struct {
	bucketPrefix    string
	region          string
	version         string
	execute         bool
	useAcceleration bool
	logFile         string
	exclusions      exclusionFlags
}

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone the reference data into a new bucket",
	Long: `Create a new reference bucket and populate it from the canonical
source bucket for the requested version. Without --execute this is a dry-run
that reports every action it would take.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refMgr.Cfg.Set("service.storage.awsS3.use-acceleration", cloneCmdConfig.useAcceleration)
		refMgr.Cfg.Set("service.storage.awsS3.log-file", cloneCmdConfig.logFile)
		if err := refMgr.InitStorageService(); err != nil {
			return errors.Wrap(err, "Clone command failed")
		}

		mode := execMode(cloneCmdConfig.execute)
		id, results, err := refMgr.CloneBucket(refmgr.CloneRequest{
			BucketPrefix:    cloneCmdConfig.bucketPrefix,
			Region:          cloneCmdConfig.region,
			VersionID:       cloneCmdConfig.version,
			Exclusions:      cloneCmdConfig.exclusions.set(),
			UseAcceleration: cloneCmdConfig.useAcceleration,
			Mode:            mode,
		})
		if err != nil {
			return errors.Wrap(err, "Clone failed")
		}

		if mode == refdata.DryRun {
			refMgr.Logger.Infof("dry-run complete: %d actions planned for %s (pass --execute to apply)",
				len(results), id.Name)
			return nil
		}
		refMgr.Logger.Infof("bucket %s is ready (%d actions, %d files copied)",
			id.Name, len(results), totalCopied(results))
		return nil
	},
}

func totalCopied(results []refdata.ActionResult) int {
	total := 0
	for _, r := range results {
		total += r.Copied
	}
	return total
}

func init() {
	rootCmd.AddCommand(cloneCmd)

	// Define the command line arguments for this subcommand
	cloneCmd.Flags().StringVarP(&cloneCmdConfig.bucketPrefix, "bucket-prefix", "b", "", "prefix for the new bucket (required)")
	cloneCmd.Flags().StringVar(&cloneCmdConfig.region, "region", "", "AWS region for the new bucket")
	cloneCmd.Flags().StringVarP(&cloneCmdConfig.version, "version", "v", "", "reference data version to clone (default is the shipped release)")
	cloneCmd.Flags().BoolVar(&cloneCmdConfig.execute, "execute", false, "execute the copy instead of performing a dry-run")
	cloneCmd.Flags().BoolVar(&cloneCmdConfig.useAcceleration, "use-acceleration", false, "use the S3 accelerate endpoint during copy operations")
	cloneCmd.Flags().StringVar(&cloneCmdConfig.logFile, "log-file", "", "optional path to capture AWS CLI output")
	cloneCmdConfig.exclusions.register(cloneCmd)
	cloneCmd.MarkFlagRequired("bucket-prefix")
}
