package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) report() error {
	if err := cli.submissionSvc.SendHeadteacherReport(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Report has been generated and sent to the Headteacher.")
	return nil
}
