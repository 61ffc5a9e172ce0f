package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/lessonnotes/core/profile"
	"github.com/trezcool/lessonnotes/core/submission"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp             = errors.New("help provided")
	errPasswordMismatch = errors.New("passwords do not match")
)

type commandLine struct {
	submissionSvc *submission.Service
	profileSvc    *profile.Service
	out           io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  seed - replace the stored submissions with the bundled dataset")
	fmt.Fprintln(cli.out, "  export [-o FILE] - print the stored submissions as JSON")
	fmt.Fprintln(cli.out, "  setpassword - set the account password")
	fmt.Fprintln(cli.out, "  report - send the headteacher report now")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("o", "", "Write to this file instead of the standard output.")

	switch args[1] {
	case "seed":
		return cli.seed()
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.export(*exportOut)
	case "setpassword":
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Confirm password:")
		confirm, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if string(pwd) != string(confirm) {
			return errPasswordMismatch
		}
		return cli.setPassword(string(pwd))
	case "report":
		return cli.report()
	default:
		cli.printUsage()
		return errHelp
	}
}
