package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) setPassword(pwd string) error {
	if err := cli.profileSvc.SetPassword(context.Background(), pwd); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Password has been changed.")
	return nil
}
