package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressLifecycle(t *testing.T) {
	tr := NewTracker()
	tr.Start("u1")

	st, ok := tr.Status("u1")
	require.True(t, ok)
	assert.Equal(t, Status{Progress: 0}, st)

	tr.SetProgress("u1", 40)
	tr.SetProgress("u1", 75)
	st, _ = tr.Status("u1")
	assert.Equal(t, 75, st.Progress)
	assert.False(t, st.Done)

	tr.Finish("u1")
	st, _ = tr.Status("u1")
	assert.Equal(t, Status{Progress: 100, Done: true}, st)
}

func TestProgressNeverMovesBackwards(t *testing.T) {
	tr := NewTracker()
	tr.Start("u1")
	tr.SetProgress("u1", 60)
	tr.SetProgress("u1", 20)
	st, _ := tr.Status("u1")
	assert.Equal(t, 60, st.Progress)
}

func TestProgressClamped(t *testing.T) {
	tr := NewTracker()
	tr.Start("u1")
	tr.SetProgress("u1", 250)
	st, _ := tr.Status("u1")
	assert.Equal(t, 100, st.Progress)
}

func TestFailResetsProgress(t *testing.T) {
	tr := NewTracker()
	tr.Start("u1")
	tr.SetProgress("u1", 80)
	tr.Fail("u1", "Could not read CSV file")

	st, ok := tr.Status("u1")
	require.True(t, ok)
	assert.True(t, st.Done)
	assert.Equal(t, 0, st.Progress)
	assert.Equal(t, "Could not read CSV file", st.Error)

	// progress reports after failure are ignored
	tr.SetProgress("u1", 90)
	st, _ = tr.Status("u1")
	assert.Equal(t, 0, st.Progress)
}

func TestUnknownUpload(t *testing.T) {
	tr := NewTracker()
	_, ok := tr.Status("missing")
	assert.False(t, ok)
}
