// An in-memory implementation of the refdata.ObjectStore interface. Used as
// the "memory" storage service and as the test double for the reconciliation
// core.

package memstore

import (
	"sort"
	"strings"

	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/pkg/errors"
)

type bucket struct {
	region      string
	accelerated bool
	objects     map[string]string
}

// MemStore holds buckets and their objects in process memory. It is not safe
// for concurrent use; the core issues at most one reconciliation per run.
type MemStore struct {
	buckets map[string]*bucket
	// Source trees addressable by CopyTree, keyed by source URI prefix.
	// Values are file paths relative to that prefix.
	sources map[string][]string
}

func New() *MemStore {
	return &MemStore{
		buckets: make(map[string]*bucket),
		sources: make(map[string][]string),
	}
}

// AddSourceTree registers files under a source URI so CopyTree can clone
// them, e.g. AddSourceTree("s3://refs/data/hg38/", "genome.fa", "genome.fai").
func (m *MemStore) AddSourceTree(uri string, files ...string) {
	m.sources[uri] = append(m.sources[uri], files...)
}

// Accelerated reports whether transfer acceleration is enabled on the
// bucket. Test helper.
func (m *MemStore) Accelerated(name string) bool {
	b, ok := m.buckets[name]
	return ok && b.accelerated
}

// Objects returns the keys stored in the bucket, sorted. Test helper.
func (m *MemStore) Objects(name string) []string {
	b, ok := m.buckets[name]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *MemStore) BucketExists(id refdata.BucketIdentity) (bool, error) {
	_, ok := m.buckets[id.Name]
	return ok, nil
}

func (m *MemStore) ListTopLevel(id refdata.BucketIdentity) ([]string, error) {
	b, ok := m.buckets[id.Name]
	if !ok {
		return nil, &refdata.StorageError{
			Kind: refdata.StorageNotFound,
			Err:  errors.Errorf("bucket %s does not exist", id.Name),
		}
	}
	seen := make(map[string]bool)
	for key := range b.objects {
		if i := strings.Index(key, "/"); i > 0 {
			seen[key[:i]] = true
		}
	}
	folders := make([]string, 0, len(seen))
	for f := range seen {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders, nil
}

func (m *MemStore) ReadObject(id refdata.BucketIdentity, key string) (*string, error) {
	b, ok := m.buckets[id.Name]
	if !ok {
		return nil, &refdata.StorageError{
			Kind: refdata.StorageNotFound,
			Err:  errors.Errorf("bucket %s does not exist", id.Name),
		}
	}
	content, ok := b.objects[key]
	if !ok {
		return nil, nil
	}
	return &content, nil
}

func (m *MemStore) WriteObject(id refdata.BucketIdentity, key string, content string) error {
	b, ok := m.buckets[id.Name]
	if !ok {
		return &refdata.StorageError{
			Kind: refdata.StorageNotFound,
			Err:  errors.Errorf("bucket %s does not exist", id.Name),
		}
	}
	b.objects[key] = content
	return nil
}

func (m *MemStore) CreateBucket(id refdata.BucketIdentity) error {
	// Re-creating an existing bucket is a safe no-op, matching the
	// idempotent-retry contract of the real store.
	if _, ok := m.buckets[id.Name]; ok {
		return nil
	}
	m.buckets[id.Name] = &bucket{
		region:  id.Region,
		objects: make(map[string]string),
	}
	return nil
}

func (m *MemStore) SetTransferAcceleration(id refdata.BucketIdentity, enabled bool) error {
	b, ok := m.buckets[id.Name]
	if !ok {
		return &refdata.StorageError{
			Kind: refdata.StorageNotFound,
			Err:  errors.Errorf("bucket %s does not exist", id.Name),
		}
	}
	b.accelerated = enabled
	return nil
}

func (m *MemStore) CopyTree(id refdata.BucketIdentity, sourceURI string, destPrefix string) (refdata.CopyResult, error) {
	b, ok := m.buckets[id.Name]
	if !ok {
		return refdata.CopyResult{}, &refdata.StorageError{
			Kind: refdata.StorageNotFound,
			Err:  errors.Errorf("bucket %s does not exist", id.Name),
		}
	}
	files, ok := m.sources[sourceURI]
	if !ok {
		return refdata.CopyResult{}, &refdata.StorageError{
			Kind: refdata.StorageNotFound,
			Err:  errors.Errorf("no source tree at %s", sourceURI),
		}
	}
	for _, f := range files {
		b.objects[destPrefix+f] = "copied from " + sourceURI + f
	}
	return refdata.CopyResult{FilesCopied: len(files)}, nil
}
