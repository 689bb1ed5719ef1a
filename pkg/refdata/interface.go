// Standard interfaces and datatypes for the refbucket project.
// Terms:
//   "group" : A named top-level subset of reference data (e.g. a genome build)
//             that can be independently included or excluded.
//   "marker" : A small object recording which reference-data version a bucket
//              currently holds.
package refdata

// An ObjectStore provides the narrow slice of object-storage functionality the
// reconciliation core needs. Implementations must not cache state across
// calls: the bucket is an external shared resource and may change between a
// read and the next act.
type ObjectStore interface {
	// Report whether the bucket exists. A missing bucket is not an error.
	BucketExists(id BucketIdentity) (bool, error)

	// List the names of the top-level folders (common prefixes) in the
	// bucket, without trailing slashes.
	ListTopLevel(id BucketIdentity) ([]string, error)

	// Read the content of the object at key. Returns nil (not an error)
	// when the object is absent.
	ReadObject(id BucketIdentity, key string) (*string, error)

	// Write content to the object at key, replacing any existing object.
	WriteObject(id BucketIdentity, key string, content string) error

	// Create the bucket in its region. Creating a bucket that already
	// exists and is owned by the caller must succeed (idempotent retry).
	CreateBucket(id BucketIdentity) error

	// Enable or disable transfer acceleration on the bucket.
	SetTransferAcceleration(id BucketIdentity, enabled bool) error

	// Recursively copy an object tree from sourceURI into the bucket under
	// destPrefix. The copy may be internally parallel; that parallelism is
	// opaque to callers. Returns per-file counts for reporting.
	CopyTree(id BucketIdentity, sourceURI string, destPrefix string) (CopyResult, error)
}

// CopyResult reports the outcome of a single CopyTree call.
type CopyResult struct {
	FilesCopied int
}
