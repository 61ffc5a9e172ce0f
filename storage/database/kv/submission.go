package kvrepos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/submission"
)

const submissionsKey = "submissions"

var errNullCollection = errors.New("null collection")

type submissionRepository struct {
	kv     core.KeyValueStore
	logger core.Logger
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

// NewSubmissionRepository stores the whole collection as one JSON array.
func NewSubmissionRepository(kv core.KeyValueStore, logger core.Logger) submission.Repository {
	return &submissionRepository{kv: kv, logger: logger}
}

// Load falls back to the bundled dataset when nothing is stored or the stored blob is unreadable.
func (repo *submissionRepository) Load(ctx context.Context) ([]submission.Submission, error) {
	data, ok, err := repo.kv.Get(ctx, submissionsKey)
	if err != nil {
		return nil, errors.Wrap(err, "reading submissions")
	}
	if !ok {
		return submission.MockSubmissions(), nil
	}

	var subs []submission.Submission
	err = json.Unmarshal(data, &subs)
	if err == nil && subs == nil {
		err = errNullCollection
	}
	if err != nil {
		repo.logger.Warn(fmt.Sprintf("kvrepos: unreadable %q blob, using bundled data: %v", submissionsKey, err))
		return submission.MockSubmissions(), nil
	}
	return subs, nil
}

func (repo *submissionRepository) Save(ctx context.Context, subs []submission.Submission) error {
	if subs == nil {
		subs = []submission.Submission{}
	}
	data, err := json.Marshal(subs)
	if err != nil {
		return errors.Wrap(err, "encoding submissions")
	}
	return errors.Wrap(repo.kv.Set(ctx, submissionsKey, data), "writing submissions")
}
