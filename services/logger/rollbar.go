package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/role"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// person maps a caller to a rollbar person: the role is the id, the teacher name the username.
func person(id role.Identity) (personID, username string) {
	personID = id.Role
	if personID == "" {
		personID = role.NameTeacher
	}
	return personID, id.Name
}

// split separates the first role.Identity from the values reported to rollbar.
func split(msg string, args []interface{}) (reported []interface{}, id *role.Identity) {
	reported = append(make([]interface{}, 0, len(args)+1), msg)
	for _, arg := range args {
		if caller, ok := arg.(role.Identity); ok {
			if id == nil {
				id = &caller
			}
			continue
		}
		reported = append(reported, arg)
	}
	return reported, id
}

// expected fmt: msg | error, map[string]interface{}, role.Identity
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	reported, id := split(msg, args)
	if id == nil {
		rollbar.ClearPerson()
		return reported
	}
	personID, username := person(*id)
	rollbar.SetPerson(personID, username, "")
	return reported
}

func (l RollbarLogger) log(report func(...interface{}), msg string, args []interface{}) {
	report(l.prepare(msg, args)...)
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.Debug, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.Info, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.Warning, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.Error, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.Critical, msg, args)
	l.std.Fatal(msg)
}
