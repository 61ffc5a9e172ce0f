package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	. "github.com/trezcool/lessonnotes/apps/api/echo"
	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
	"github.com/trezcool/lessonnotes/core/role"
	"github.com/trezcool/lessonnotes/core/subject"
	"github.com/trezcool/lessonnotes/core/submission"
	"github.com/trezcool/lessonnotes/fs"
	"github.com/trezcool/lessonnotes/services/email"
	"github.com/trezcool/lessonnotes/storage/database/kv"
	"github.com/trezcool/lessonnotes/tests"
)

var (
	today = time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errUnknownRole  = httpErr{Error: "unknown role"}
	errNotFound     = httpErr{Error: "not found"}
)

type testEnv struct {
	conf       *core.Config
	app        *Server
	mailSvc    *emailsvc.ConsoleServiceMock
	profileSvc *profile.Service
	logger     *testutil.Logger
}

func setup(t *testing.T) testEnv {
	conf := core.NewTestConfig()
	logger := new(testutil.Logger)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, true, logger)

	submission.NowFunc = func() time.Time { return today }
	t.Cleanup(func() { submission.NowFunc = time.Now })

	// set up DB & repos
	db := testutil.OpenDB(t)
	subRepo := kvrepos.NewSubmissionRepository(db, logger)
	profileStore := kvrepos.NewProfileStore(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	profileSvc := profile.NewService(profileStore, conf)
	validate, translator := testutil.NewValidator()

	// set up server
	app := NewServer(conf, logger, ServerDeps{
		SubmissionSvc: submission.NewService(subRepo, mailSvc, nil, conf),
		ProfileSvc:    profileSvc,
		Subjects:      subject.NewList(subject.DefaultSubjects...),
		Validate:      validate,
		Translator:    translator,
	})
	return testEnv{conf: conf, app: app, mailSvc: mailSvc, profileSvc: profileSvc, logger: logger}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (env testEnv) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, id role.Identity) string {
	token, err := GenerateToken(id, conf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

// mock returns the bundled submissions with the given ids, in that order.
func mock(t *testing.T, ids ...int) []byte {
	byID := make(map[int]submission.Submission)
	for _, s := range submission.MockSubmissions() {
		byID[s.ID] = s
	}
	subs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, byID[id])
	}
	return marchallList(t, subs...)
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		if rec.Body.Len() > 0 {
			t.Errorf("failed! data = %v; want no data", rec.Body.String())
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
