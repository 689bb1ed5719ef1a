// Handles the "refbucket verify" command

package cmd

import (
	"github.com/daylilybio/refbucket/pkg/refmgr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var verifyCmdConfig struct {
	bucket       string
	bucketPrefix string
	region       string
	version      string
	exclusions   exclusionFlags
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify that a reference bucket matches expectations",
	Long: `Check an existing bucket against the expected folder layout and
version marker for the requested version. Every discrepancy is reported, and
any mismatch makes the command exit non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, verdict, err := refMgr.VerifyBucket(refmgr.VerifyRequest{
			Bucket:       verifyCmdConfig.bucket,
			BucketPrefix: verifyCmdConfig.bucketPrefix,
			Region:       verifyCmdConfig.region,
			VersionID:    verifyCmdConfig.version,
			Exclusions:   verifyCmdConfig.exclusions.set(),
		})
		if err != nil {
			return errors.Wrap(err, "Verification failed")
		}

		if !verdict.Match {
			for _, reason := range verdict.Reasons {
				refMgr.Logger.Errorf("bucket %s: %s", id.Name, reason)
			}
			return errors.Errorf("bucket %q failed verification (%d issues)", id.Name, len(verdict.Reasons))
		}

		refMgr.Logger.Infof("bucket %s passed verification", id.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyCmdConfig.bucket, "bucket", "", "full name of the bucket to verify")
	verifyCmd.Flags().StringVarP(&verifyCmdConfig.bucketPrefix, "bucket-prefix", "b", "", "bucket prefix, used with the region to derive the bucket name")
	verifyCmd.Flags().StringVar(&verifyCmdConfig.region, "region", "", "AWS region of the bucket")
	verifyCmd.Flags().StringVarP(&verifyCmdConfig.version, "version", "v", "", "reference data version to verify against")
	verifyCmdConfig.exclusions.register(verifyCmd)
}
