package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/submission"
)

func (cli *commandLine) export(path string) error {
	subs, err := cli.submissionSvc.Query(
		context.Background(),
		nil,
		submission.QueryFilter{},
		[]core.Ordering{{Field: submission.OrderByID, Ascending: true}},
	)
	if err != nil {
		return err
	}

	var w io.Writer = cli.out
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating export file")
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(subs), "encoding submissions")
}
