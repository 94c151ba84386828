package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataMerge(t *testing.T) {
	base := Metadata{"workflow_id": "wf-1", "filename": "a.jpg"}

	merged := base.Merge(Metadata{"facebook_error": "boom", "filename": "b.jpg"})

	assert.Equal(t, "wf-1", merged["workflow_id"])
	assert.Equal(t, "b.jpg", merged["filename"])
	assert.Equal(t, "boom", merged["facebook_error"])

	// receiver untouched
	assert.Equal(t, "a.jpg", base["filename"])
	assert.NotContains(t, base, "facebook_error")
}

func TestMetadataMerge_NilReceiver(t *testing.T) {
	var base Metadata
	merged := base.Merge(Metadata{"k": "v"})
	assert.Equal(t, "v", merged["k"])
}

func TestMetadataScanValue(t *testing.T) {
	m := Metadata{"filename": "a.jpg", "attempt": float64(2)}

	v, err := m.Value()
	require.NoError(t, err)

	var roundTripped Metadata
	require.NoError(t, roundTripped.Scan(v))
	assert.Equal(t, m, roundTripped)

	var fromNil Metadata
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{PostStatusPending, PostStatusPosted, PostStatusFailed, PostStatusDraft} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("published"))
	assert.False(t, ValidStatus(""))
}
