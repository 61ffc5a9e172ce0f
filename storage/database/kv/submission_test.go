package kvrepos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lessonnotes/core/submission"
	"github.com/trezcool/lessonnotes/tests"
)

func TestSubmissionRepository_Load(t *testing.T) {
	ctx := context.Background()
	stored := []submission.Submission{
		{ID: 7, Teacher: "Mr. John Doe", Subject: "Mathematics", Class: "JHS 1", Week: 7, Term: 1,
			Status: submission.StatusNeedsCorrection, UploadedOn: "2025-06-22", Feedback: null.StringFrom("Add objectives")},
	}

	tests := []struct {
		name     string
		blob     []byte
		wantSubs []submission.Submission
		wantWarn bool
	}{
		{name: "absent key", wantSubs: submission.MockSubmissions()},
		{name: "malformed json", blob: []byte(`[{"id": 1,`), wantSubs: submission.MockSubmissions(), wantWarn: true},
		{name: "null", blob: []byte(`null`), wantSubs: submission.MockSubmissions(), wantWarn: true},
		{name: "unknown status", blob: []byte(`[{"id": 1, "status": "Archived"}]`), wantSubs: submission.MockSubmissions(), wantWarn: true},
		{name: "empty array", blob: []byte(`[]`), wantSubs: []submission.Submission{}},
		{name: "stored", wantSubs: stored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := testutil.OpenDB(t)
			logger := new(testutil.Logger)
			switch {
			case tt.blob != nil:
				require.NoError(t, kv.Set(ctx, submissionsKey, tt.blob))
			case tt.name == "stored":
				testutil.StoreSubmissions(t, kv, stored...)
			}

			subs, err := NewSubmissionRepository(kv, logger).Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubs, subs)

			if tt.wantWarn {
				if assert.Len(t, logger.Entries(), 1) {
					assert.Equal(t, "warn", logger.Entries()[0].Level)
				}
			} else {
				assert.Empty(t, logger.Entries())
			}
		})
	}
}

func TestSubmissionRepository_Save(t *testing.T) {
	ctx := context.Background()
	kv := testutil.OpenDB(t)
	repo := NewSubmissionRepository(kv, new(testutil.Logger))

	subs := submission.MockSubmissions()[:2]
	require.NoError(t, repo.Save(ctx, subs))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, subs, got)

	require.NoError(t, repo.Save(ctx, nil))
	blob, _, err := kv.Get(ctx, submissionsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))
}

func TestProfileStore(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore(testutil.OpenDB(t))

	_, ok, err := store.Get(ctx, "teacherName")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "teacherName", "Mrs. Jane Smith"))
	val, ok, err := store.Get(ctx, "teacherName")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Mrs. Jane Smith", val)
}
