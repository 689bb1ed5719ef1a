package refdata

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

// GroupName tags one independently includable subset of reference data. The
// set of valid groups is closed; extending it means updating the catalog.
type GroupName string

const (
	GroupHG38 GroupName = "hg38"
	GroupB37  GroupName = "b37"
	GroupGIAB GroupName = "giab"
)

// AllGroups lists every valid group in catalog-declared order.
var AllGroups = []GroupName{GroupHG38, GroupB37, GroupGIAB}

// ParseGroup validates a raw group name from the CLI boundary so that planner
// internals only ever see well-typed values.
func ParseGroup(raw string) (GroupName, error) {
	for _, g := range AllGroups {
		if string(g) == raw {
			return g, nil
		}
	}
	return "", errors.Errorf("unknown reference data group %q", raw)
}

// MarkerKey is the well-known key of the object whose content records which
// reference-data version a bucket holds. Its content is the sole source of
// truth for "which version is installed".
const MarkerKey = "s3_reference_data_version.info"

// A CopySpec pairs a source tree in the release's source bucket with its
// destination prefix inside a managed bucket. Destination prefixes always
// start with the owning group's folder, so a managed bucket shows exactly one
// top-level folder per included group.
type CopySpec struct {
	SourcePrefix string
	DestPrefix   string
}

// A ReferenceVersion describes one supported release of the reference data:
// which groups it contains, where their source trees live, and the exact
// marker content a bucket holding this release must carry.
type ReferenceVersion struct {
	// Release identifier, e.g. "0.7.131c".
	ID string
	// Bucket holding the canonical copy of this release.
	SourceBucket string
	// Groups contained in this release, in declared order. Never empty.
	Groups []GroupName
	// Trees to copy per group.
	Sources map[GroupName][]CopySpec
	// Expected marker object content. Uniquely identifies ID.
	MarkerContent string
}

// IncludedGroups returns the version's groups minus the exclusions, keeping
// the declared order.
func (v ReferenceVersion) IncludedGroups(exclusions ExclusionSet) []GroupName {
	var included []GroupName
	for _, g := range v.Groups {
		if !exclusions[g] {
			included = append(included, g)
		}
	}
	return included
}

// An ExclusionSet names the groups the caller wants omitted from copy and
// verification consideration.
type ExclusionSet map[GroupName]bool

// BucketIdentity names a target bucket and the region it lives in.
type BucketIdentity struct {
	Name   string
	Region string
}

// Bucket names must satisfy the storage provider's naming rules: lowercase
// letters, digits and hyphens, starting and ending with a letter or digit.
var bucketNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

// DeriveBucketIdentity builds the deterministic bucket identity for a given
// prefix and region.
func DeriveBucketIdentity(prefix, region string) (BucketIdentity, error) {
	id := BucketIdentity{
		Name:   fmt.Sprintf("%s-omics-analysis-%s", prefix, region),
		Region: region,
	}
	if err := id.Validate(); err != nil {
		return BucketIdentity{}, err
	}
	return id, nil
}

// Validate checks the identity against the provider's bucket naming rules.
func (id BucketIdentity) Validate() error {
	if !bucketNameRe.MatchString(id.Name) {
		return errors.Errorf("invalid bucket name %q", id.Name)
	}
	if id.Region == "" {
		return errors.New("bucket region must not be empty")
	}
	return nil
}
