package main

import (
	"context"
	"fmt"

	"github.com/trezcool/lessonnotes/core/submission"
)

func (cli *commandLine) seed() error {
	subs := submission.MockSubmissions()
	if err := cli.submissionSvc.Reset(context.Background(), subs); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d submissions stored\n", len(subs))
	return nil
}
