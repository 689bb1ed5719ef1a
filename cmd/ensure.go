// Handles the "refbucket ensure" command

package cmd

import (
	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/daylilybio/refbucket/pkg/refmgr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ensureCmdConfig struct {
	bucketPrefix    string
	region          string
	version         string
	execute         bool
	useAcceleration bool
	logFile         string
	exclusions      exclusionFlags
}

var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Ensure a reference bucket exists and matches the expected layout",
	Long: `Verify the target bucket and clone it when it is missing. A bucket
that already matches is a no-op success. A bucket that exists but does not
match fails outright: a partially populated bucket may hide an earlier
aborted clone, so it is never patched automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		refMgr.Cfg.Set("service.storage.awsS3.use-acceleration", ensureCmdConfig.useAcceleration)
		refMgr.Cfg.Set("service.storage.awsS3.log-file", ensureCmdConfig.logFile)
		if err := refMgr.InitStorageService(); err != nil {
			return errors.Wrap(err, "Ensure command failed")
		}

		mode := execMode(ensureCmdConfig.execute)
		id, results, err := refMgr.EnsureBucket(refmgr.CloneRequest{
			BucketPrefix:    ensureCmdConfig.bucketPrefix,
			Region:          ensureCmdConfig.region,
			VersionID:       ensureCmdConfig.version,
			Exclusions:      ensureCmdConfig.exclusions.set(),
			UseAcceleration: ensureCmdConfig.useAcceleration,
			Mode:            mode,
		})
		if err != nil {
			return errors.Wrap(err, "Ensure failed")
		}

		if len(results) == 0 {
			// Nothing to do, the bucket already matched.
			return nil
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

func init() {
	rootCmd.AddCommand(ensureCmd)

	ensureCmd.Flags().StringVarP(&ensureCmdConfig.bucketPrefix, "bucket-prefix", "b", "", "prefix for the bucket (required)")
	ensureCmd.Flags().StringVar(&ensureCmdConfig.region, "region", "", "AWS region for the bucket")
	ensureCmd.Flags().StringVarP(&ensureCmdConfig.version, "version", "v", "", "reference data version to ensure")
	ensureCmd.Flags().BoolVar(&ensureCmdConfig.execute, "execute", false, "execute any needed clone instead of performing a dry-run")
	ensureCmd.Flags().BoolVar(&ensureCmdConfig.useAcceleration, "use-acceleration", false, "use the S3 accelerate endpoint during copy operations")
	ensureCmd.Flags().StringVar(&ensureCmdConfig.logFile, "log-file", "", "optional path to capture AWS CLI output")
	ensureCmdConfig.exclusions.register(ensureCmd)
	ensureCmd.MarkFlagRequired("bucket-prefix")
}
