package memstore

import (
	"testing"

	"github.com/daylilybio/refbucket/pkg/refdata"
)

var id = refdata.BucketIdentity{Name: "t-omics-analysis-us-west-2", Region: "us-west-2"}

func TestBucketLifecycle(t *testing.T) {
	store := New()

	exists, err := store.BucketExists(id)
	if err != nil || exists {
		t.Fatalf("Fresh store should have no buckets: %v %v\n", exists, err)
	}

	if err := store.CreateBucket(id); err != nil {
		t.Fatalf("Failed to create bucket: %v\n", err)
	}
	// Idempotent retry.
	if err := store.CreateBucket(id); err != nil {
		t.Fatalf("Re-creating an existing bucket must succeed: %v\n", err)
	}

	exists, err = store.BucketExists(id)
	if err != nil || !exists {
		t.Fatalf("Bucket should exist: %v %v\n", exists, err)
	}
}

func TestObjectsAndTopLevel(t *testing.T) {
	store := New()
	if err := store.CreateBucket(id); err != nil {
		t.Fatalf("Failed to create bucket: %v\n", err)
	}

	if err := store.WriteObject(id, "hg38/references/genome.fa", "x"); err != nil {
		t.Fatalf("Failed to write object: %v\n", err)
	}
	if err := store.WriteObject(id, "marker.info", "0.7.131c"); err != nil {
		t.Fatalf("Failed to write object: %v\n", err)
	}

	folders, err := store.ListTopLevel(id)
	if err != nil {
		t.Fatalf("Failed to list: %v\n", err)
	}
	// Bare keys are not folders.
	if len(folders) != 1 || folders[0] != "hg38" {
		t.Fatalf("Expected [hg38], Got %v\n", folders)
	}

	content, err := store.ReadObject(id, "marker.info")
	if err != nil || content == nil || *content != "0.7.131c" {
		t.Fatalf("Wrong marker read: %v %v\n", content, err)
	}

	absent, err := store.ReadObject(id, "nope")
	if err != nil || absent != nil {
		t.Fatalf("Absent object should read as nil: %v %v\n", absent, err)
	}
}

func TestCopyTree(t *testing.T) {
	store := New()
	if err := store.CreateBucket(id); err != nil {
		t.Fatalf("Failed to create bucket: %v\n", err)
	}
	store.AddSourceTree("s3://refs/data/hg38/", "genome.fa", "genome.fa.fai")

	result, err := store.CopyTree(id, "s3://refs/data/hg38/", "hg38/references/")
	if err != nil {
		t.Fatalf("Copy failed: %v\n", err)
	}
	if result.FilesCopied != 2 {
		t.Fatalf("Expected 2 files copied, Got %v\n", result.FilesCopied)
	}

	keys := store.Objects(id.Name)
	if len(keys) != 2 || keys[0] != "hg38/references/genome.fa" {
		t.Fatalf("Wrong destination keys: %v\n", keys)
	}

	if _, err := store.CopyTree(id, "s3://refs/unknown/", "x/"); err == nil {
		t.Fatal("Copy from an unregistered source should fail")
	}
}
