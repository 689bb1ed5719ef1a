package refmgr

import (
	"fmt"
	"os"

	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/sirupsen/logrus"
)

func Example() {
	mgrArgs := map[string]interface{}{}
	// ./refbucket.yaml is a refbucket configuration set up for your environment
	mgrArgs["config-file"] = "./refbucket.yaml"

	// Adding a custom logger is optional
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	mgrArgs["logger"] = logger

	mgr, err := NewManager(mgrArgs)
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// Preview what a clone of the default release would do
	req := CloneRequest{
		BucketPrefix: "mylab",
		Exclusions:   refdata.ExclusionSet{refdata.GroupGIAB: true},
		Mode:         refdata.DryRun,
	}
	id, results, err := mgr.CloneBucket(req)
	if err != nil {
		fmt.Printf("Clone planning failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d actions planned for %s\n", len(results), id.Name)

	// Apply for real
	req.Mode = refdata.Execute
	if _, _, err := mgr.CloneBucket(req); err != nil {
		fmt.Printf("Clone failed: %v\n", err)
		os.Exit(1)
	}

	// Later runs confirm the bucket still matches
	_, verdict, err := mgr.VerifyBucket(VerifyRequest{BucketPrefix: "mylab"})
	if err != nil {
		fmt.Printf("Verification failed: %v\n", err)
		os.Exit(1)
	}
	if !verdict.Match {
		fmt.Printf("Bucket drifted: %v\n", verdict.Reasons)
	}
}
