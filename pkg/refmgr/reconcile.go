// High-level clone/verify/ensure operations composing the inspector, the
// planner and the driver. Each call reads bucket state fresh, plans against
// that snapshot and (when asked) applies the plan; nothing is cached between
// calls.

package refmgr

import (
	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/pkg/errors"
)

// CloneRequest describes one clone or ensure invocation.
type CloneRequest struct {
	BucketPrefix string
	// Region for the new bucket; empty means the configured default.
	Region string
	// Catalog version id; empty means the default release.
	VersionID  string
	Exclusions refdata.ExclusionSet
	// Enable transfer acceleration on the new bucket and route copies
	// through the accelerate endpoint.
	UseAcceleration bool
	Mode            refdata.ExecMode
}

// VerifyRequest describes one verify invocation. Either Bucket names the
// bucket outright or it is derived from BucketPrefix and Region.
type VerifyRequest struct {
	Bucket       string
	BucketPrefix string
	Region       string
	VersionID    string
	Exclusions   refdata.ExclusionSet
}

func (mgr *RefManager) identity(bucket, prefix, region string) (refdata.BucketIdentity, error) {
	region = mgr.Region(region)
	if bucket != "" {
		id := refdata.BucketIdentity{Name: bucket, Region: region}
		return id, id.Validate()
	}
	if prefix == "" {
		return refdata.BucketIdentity{}, errors.New("either a bucket name or a bucket prefix is required")
	}
	return refdata.DeriveBucketIdentity(prefix, region)
}

// CloneBucket creates and populates a fresh reference bucket. Cloning over an
// existing bucket is refused outright; use EnsureBucket for that case.
func (mgr *RefManager) CloneBucket(req CloneRequest) (refdata.BucketIdentity, []refdata.ActionResult, error) {
	version, err := mgr.Version(req.VersionID)
	if err != nil {
		return refdata.BucketIdentity{}, nil, err
	}

	id, err := mgr.identity("", req.BucketPrefix, req.Region)
	if err != nil {
		return refdata.BucketIdentity{}, nil, err
	}

	snapshot, err := mgr.inspector().Inspect(id)
	if err != nil {
		return id, nil, err
	}
	if snapshot.Exists {
		return id, nil, errors.Errorf("bucket %q already exists", id.Name)
	}

	plan := refdata.PlanClone(id, version, req.Exclusions, refdata.CloneOptions{
		Acceleration: req.UseAcceleration,
	})
	results, err := mgr.driver().Execute(plan, req.Mode)
	return id, results, err
}

// VerifyBucket checks an existing bucket against the expected layout for the
// requested version. The verdict lists every detected discrepancy.
func (mgr *RefManager) VerifyBucket(req VerifyRequest) (refdata.BucketIdentity, refdata.Verdict, error) {
	version, err := mgr.Version(req.VersionID)
	if err != nil {
		return refdata.BucketIdentity{}, refdata.Verdict{}, err
	}

	id, err := mgr.identity(req.Bucket, req.BucketPrefix, req.Region)
	if err != nil {
		return refdata.BucketIdentity{}, refdata.Verdict{}, err
	}

	snapshot, err := mgr.inspector().Inspect(id)
	if err != nil {
		return id, refdata.Verdict{}, err
	}

	return id, refdata.PlanVerify(snapshot, version, req.Exclusions), nil
}

// EnsureBucket verifies the target bucket and clones it when it is missing. A
// matching bucket is a no-op success. A bucket that exists but does not match
// fails with a ConflictError; partially populated buckets are never patched.
func (mgr *RefManager) EnsureBucket(req CloneRequest) (refdata.BucketIdentity, []refdata.ActionResult, error) {
	version, err := mgr.Version(req.VersionID)
	if err != nil {
		return refdata.BucketIdentity{}, nil, err
	}

	id, err := mgr.identity("", req.BucketPrefix, req.Region)
	if err != nil {
		return refdata.BucketIdentity{}, nil, err
	}

	snapshot, err := mgr.inspector().Inspect(id)
	if err != nil {
		return id, nil, err
	}

	plan, verdict, err := refdata.PlanEnsure(id, snapshot, version, req.Exclusions, refdata.CloneOptions{
		Acceleration: req.UseAcceleration,
	})
	if err != nil {
		return id, nil, err
	}
	if verdict != nil {
		mgr.Logger.Infof("bucket %s already matches version %s", id.Name, version.ID)
		return id, nil, nil
	}

	mgr.Logger.Infof("bucket %s is missing, cloning reference data (%s)", id.Name, req.Mode)
	results, err := mgr.driver().Execute(*plan, req.Mode)
	return id, results, err
}
