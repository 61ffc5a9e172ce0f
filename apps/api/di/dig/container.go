package dig_container

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/lessonnotes/apps/api/echo"
	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
	"github.com/trezcool/lessonnotes/core/subject"
	"github.com/trezcool/lessonnotes/core/submission"
	emailsvc "github.com/trezcool/lessonnotes/services/email"
	logsvc "github.com/trezcool/lessonnotes/services/logger"
	metricsvc "github.com/trezcool/lessonnotes/services/metrics"
	schedulersvc "github.com/trezcool/lessonnotes/services/scheduler"
	"github.com/trezcool/lessonnotes/storage/database"
	kvrepos "github.com/trezcool/lessonnotes/storage/database/kv"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type serverParams struct {
	dig.In
	Conf          *core.Config
	Logger        core.Logger
	SubmissionSvc *submission.Service
	ProfileSvc    *profile.Service
	Subjects      *subject.List
	Validate      *validator.Validate
	Translator    ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) core.KeyValueStore {
	db, err := database.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("opening storage: %v", err), err)
	}
	return db
}

func newSubmissionRepository(db core.KeyValueStore, loggerParam DBLoggerParam) submission.Repository {
	return kvrepos.NewSubmissionRepository(db, loggerParam.Logger)
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newRecorder() (submission.Recorder, error) {
	return metricsvc.NewRecorder(prometheus.DefaultRegisterer)
}

func newSubjectList() *subject.List {
	return subject.NewList(subject.DefaultSubjects...)
}

func newScheduler(conf *core.Config, logger core.Logger) *schedulersvc.Scheduler {
	return schedulersvc.New(logger, conf.Server.ShutdownTimeout)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf, p.Logger, echoapi.ServerDeps{
		SubmissionSvc: p.SubmissionSvc,
		ProfileSvc:    p.ProfileSvc,
		Subjects:      p.Subjects,
		Validate:      p.Validate,
		Translator:    p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	return newContainer(core.NewConfig)
}

func newContainer(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newSubmissionRepository))
	must(c.Provide(kvrepos.NewProfileStore))
	must(c.Provide(newEmailService))
	must(c.Provide(newRecorder))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(submission.NewService))
	must(c.Provide(profile.NewService))
	must(c.Provide(newSubjectList))
	must(c.Provide(newScheduler))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
