package refdata_test

import (
	"testing"

	"github.com/daylilybio/refbucket/pkg/memstore"
	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectMissingBucket(t *testing.T) {
	id, _ := cloneInputs()
	inspector := refdata.NewInspector(memstore.New(), testLogger())

	snapshot, err := inspector.Inspect(id)
	require.NoError(t, err, "a missing bucket is not an error")
	assert.False(t, snapshot.Exists)
	assert.Empty(t, snapshot.TopLevelFolders)
	assert.Nil(t, snapshot.MarkerValue)
}

func TestInspectPopulatedBucket(t *testing.T) {
	id, version := cloneInputs()
	store := memstore.New()
	require.NoError(t, store.CreateBucket(id))
	require.NoError(t, store.WriteObject(id, "hg38/references/genome.fa", "x"))
	require.NoError(t, store.WriteObject(id, "giab/reads/r1.fq", "x"))
	require.NoError(t, store.WriteObject(id, refdata.MarkerKey, version.MarkerContent))

	inspector := refdata.NewInspector(store, testLogger())
	snapshot, err := inspector.Inspect(id)
	require.NoError(t, err)

	assert.True(t, snapshot.Exists)
	assert.Equal(t, []string{"giab", "hg38"}, snapshot.TopLevelFolders)
	require.NotNil(t, snapshot.MarkerValue)
	assert.Equal(t, version.MarkerContent, *snapshot.MarkerValue)
	assert.Nil(t, snapshot.AccelerationEnabled)
}

func TestInspectMarkerAbsent(t *testing.T) {
	id, _ := cloneInputs()
	store := memstore.New()
	require.NoError(t, store.CreateBucket(id))
	require.NoError(t, store.WriteObject(id, "hg38/references/genome.fa", "x"))

	snapshot, err := refdata.NewInspector(store, testLogger()).Inspect(id)
	require.NoError(t, err)
	assert.True(t, snapshot.Exists)
	assert.Nil(t, snapshot.MarkerValue, "an absent marker is recorded, not an error")
}

// deniedStore simulates an authorization failure on the existence check.
type deniedStore struct {
	forbiddenStore
}

func (s deniedStore) BucketExists(refdata.BucketIdentity) (bool, error) {
	return false, &refdata.StorageError{
		Kind: refdata.StorageAccessDenied,
		Err:  errors.New("403"),
	}
}

func TestInspectPropagatesStorageErrors(t *testing.T) {
	id, _ := cloneInputs()
	inspector := refdata.NewInspector(deniedStore{forbiddenStore{t}}, testLogger())

	_, err := inspector.Inspect(id)
	require.Error(t, err, "a wrong read would corrupt the plan")
	assert.Contains(t, err.Error(), "access denied")
}
