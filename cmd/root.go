// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/daylilybio/refbucket/pkg/refmgr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmdConfig struct {
	profile  string
	region   string
	logLevel string
}

var refMgr *refmgr.RefManager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "refbucket",
	Short: "Manage omics analysis reference buckets",
	Long: `Provision and validate object-storage buckets holding pinned-version
genomic reference data. Subcommands clone a known-good layout into a new
bucket, verify an existing bucket against that layout, or ensure a bucket
exists and matches.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := logrus.New()
		level, err := logrus.ParseLevel(rootCmdConfig.logLevel)
		if err != nil {
			fmt.Printf("Invalid log level %q: %v\n", rootCmdConfig.logLevel, err)
			os.Exit(1)
		}
		logger.SetLevel(level)

		mgrArgs := map[string]interface{}{"logger": logger}
		if cfgFile != "" {
			mgrArgs["config-file"] = cfgFile
		}
		if rootCmdConfig.profile != "" {
			mgrArgs["profile"] = rootCmdConfig.profile
		}
		if rootCmdConfig.region != "" {
			mgrArgs["region"] = rootCmdConfig.region
		}

		refMgr, err = refmgr.NewManager(mgrArgs)
		if err != nil {
			fmt.Printf("Failed to initialize refbucket manager: %v\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by refbucket.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if refMgr == nil || refMgr.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			refMgr.Logger.Error(err)
		}
		os.Exit(1)
	}
}

// exclusionFlags maps the --exclude-* switches, one per reference data group.
type exclusionFlags struct {
	hg38 bool
	b37  bool
	giab bool
}

func (f *exclusionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.hg38, "exclude-hg38", false, "exclude hg38 references and annotations")
	cmd.Flags().BoolVar(&f.b37, "exclude-b37", false, "exclude b37 references and annotations")
	cmd.Flags().BoolVar(&f.giab, "exclude-giab", false, "exclude GIAB concordance reads")
}

func (f *exclusionFlags) set() refdata.ExclusionSet {
	excl := refdata.ExclusionSet{}
	if f.hg38 {
		excl[refdata.GroupHG38] = true
	}
	if f.b37 {
		excl[refdata.GroupB37] = true
	}
	if f.giab {
		excl[refdata.GroupGIAB] = true
	}
	return excl
}

func execMode(execute bool) refdata.ExecMode {
	if execute {
		return refdata.Execute
	}
	return refdata.DryRun
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is configs/refbucket.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.profile, "profile", "", "AWS profile for SDK and AWS CLI calls")
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.region, "region", "", "default AWS region to target (may be overridden per command)")
	rootCmd.PersistentFlags().StringVar(&rootCmdConfig.logLevel, "log-level", "info", "logging level")
}
