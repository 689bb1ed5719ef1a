package refdata

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// A BucketSnapshot is the observed state of a bucket at inspection time. It
// is produced fresh on every inspection and never cached across
// reconciliation calls: bucket state may change between a read and the next
// act.
type BucketSnapshot struct {
	Exists          bool
	TopLevelFolders []string
	// Marker object content, nil when the marker is absent.
	MarkerValue *string
	// Transfer acceleration state; nil when unknown. The collaborator
	// interface exposes no read for it, so the inspector leaves it unset
	// and verification ignores it.
	AccelerationEnabled *bool
}

// An Inspector reads the current state of a bucket through an ObjectStore.
type Inspector struct {
	store ObjectStore
	log   logrus.FieldLogger
}

func NewInspector(store ObjectStore, log logrus.FieldLogger) *Inspector {
	return &Inspector{store: store, log: log}
}

// Inspect returns a fresh snapshot of the bucket. A missing bucket yields
// {Exists: false} with a nil error; authorization and network failures
// propagate to the caller, since planning against a wrong read would corrupt
// the plan.
func (ins *Inspector) Inspect(id BucketIdentity) (BucketSnapshot, error) {
	exists, err := ins.store.BucketExists(id)
	if err != nil {
		return BucketSnapshot{}, errors.Wrap(err, "checking bucket "+id.Name)
	}
	if !exists {
		ins.log.Debugf("bucket %s does not exist", id.Name)
		return BucketSnapshot{Exists: false}, nil
	}

	folders, err := ins.store.ListTopLevel(id)
	if err != nil {
		return BucketSnapshot{}, errors.Wrap(err, "listing top-level folders of "+id.Name)
	}

	marker, err := ins.store.ReadObject(id, MarkerKey)
	if err != nil {
		return BucketSnapshot{}, errors.Wrap(err, "reading version marker of "+id.Name)
	}
	if marker == nil {
		ins.log.Debugf("bucket %s has no version marker", id.Name)
	}

	return BucketSnapshot{
		Exists:          true,
		TopLevelFolders: folders,
		MarkerValue:     marker,
	}, nil
}
