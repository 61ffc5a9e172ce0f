package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
	"github.com/trezcool/lessonnotes/core/submission"
	appfs "github.com/trezcool/lessonnotes/fs"
	emailsvc "github.com/trezcool/lessonnotes/services/email"
	logsvc "github.com/trezcool/lessonnotes/services/logger"
	"github.com/trezcool/lessonnotes/storage/database"
	kvrepos "github.com/trezcool/lessonnotes/storage/database/kv"
)

// waiter is implemented by email services that send in the background.
type waiter interface {
	Wait()
}

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf.Debug, logger)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening storage: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// start CLI
	cli := commandLine{
		submissionSvc: submission.NewService(kvrepos.NewSubmissionRepository(db, logger), mailSvc, nil, conf),
		profileSvc:    profile.NewService(kvrepos.NewProfileStore(db), conf),
		out:           os.Stdout,
	}
	err = cli.run(os.Args)

	if w, ok := mailSvc.(waiter); ok {
		w.Wait()
	}
	if cerr := db.Close(); cerr != nil {
		logger.Error(fmt.Sprintf("closing storage: %v", cerr), cerr)
	}

	if err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
