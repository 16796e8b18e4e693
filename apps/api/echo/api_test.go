package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/activity"
	"github.com/flipspace/flipspace/core/chat"
	"github.com/flipspace/flipspace/core/forum"
	"github.com/flipspace/flipspace/core/progress"
	"github.com/flipspace/flipspace/core/quiz"
	"github.com/flipspace/flipspace/core/resource"
	"github.com/flipspace/flipspace/core/social"
	"github.com/flipspace/flipspace/core/user"
	"github.com/flipspace/flipspace/fixtures"
	emailsvc "github.com/flipspace/flipspace/services/email"
	"github.com/flipspace/flipspace/storage"
	"github.com/flipspace/flipspace/storage/kv/memkv"
)

type testLogger struct{}

func (testLogger) Enable(bool)                        {}
func (testLogger) Debug(string, ...interface{})       {}
func (testLogger) Info(string, ...interface{})        {}
func (testLogger) Warn(string, ...interface{})        {}
func (testLogger) Error(string, ...interface{})       {}
func (testLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setupServer(t *testing.T) Server {
	t.Helper()
	return setupServerWithConf(t, core.NewTestConfig())
}

func setupServerWithConf(t *testing.T, conf *core.Config) Server {
	t.Helper()

	validate, translator := core.NewValidator()
	store := storage.New(memkv.Open())
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	roster := fixtures.Users()
	seedResources := fixtures.Resources()

	return NewServer(&Options{
		Conf:           conf,
		Logger:         testLogger{},
		DisableReqLogs: true,
		Validate:       validate,
		Translator:     translator,
		UserSvc:        user.NewService(store, roster, conf),
		ResourceSvc:    resource.NewService(store, seedResources, store, roster, mailSvc, validate, conf),
		QuizSvc:        quiz.NewService(store, fixtures.Quizzes(), validate, conf),
		ForumSvc:       forum.NewService(store, fixtures.Discussions(), conf),
		ChatSvc:        chat.NewService(store, fixtures.Conversations(), conf),
		ProgressSvc:    progress.NewService(store, store, seedResources, conf),
		SocialSvc:      social.NewService(store),
		ActivitySvc:    activity.NewService(store, conf),
	})
}

func do(t *testing.T, srv Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv Server, username, password string) LoginResponse {
	t.Helper()

	rec := do(t, srv, http.MethodPost, "/v1/users/login", "", LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestAPI_home(t *testing.T) {
	srv := setupServer(t)

	rec := do(t, srv, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the FlipSpace API!", rec.Body.String())
}

func TestAPI_login(t *testing.T) {
	srv := setupServer(t)

	resp := login(t, srv, "teacher1", "flip123")
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "teacher", resp.User.Role)

	// the session never carries a password
	var raw map[string]interface{}
	rec := do(t, srv, http.MethodPost, "/v1/users/login", "", LoginRequest{Username: "student1", Password: "learn123"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw["user"], "password")

	tests := []struct {
		name string
		body LoginRequest
		code int
	}{
		{name: "wrong password", body: LoginRequest{Username: "teacher1", Password: "nope"}, code: http.StatusBadRequest},
		{name: "unknown user", body: LoginRequest{Username: "ghost", Password: "flip123"}, code: http.StatusBadRequest},
		{name: "missing fields", body: LoginRequest{}, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/v1/users/login", "", tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestAPI_validationMessagesTranslated(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Debug = false // clients get translated field errors, not validator internals
	srv := setupServerWithConf(t, conf)

	rec := do(t, srv, http.MethodPost, "/v1/users/login", "", LoginRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, "this field is required", fields["username"])
	assert.Equal(t, "this field is required", fields["password"])

	// domain tags translate too
	teacher := login(t, srv, "teacher1", "flip123")
	nr := resource.NewResource{Title: "T", Module: "Mathematics", Type: "podcast", URL: "https://x.test"}
	rec = do(t, srv, http.MethodPost, "/v1/resources", teacher.Token, nr)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Equal(t, "must be one of: video, pdf, link", fields["type"])
}

func TestAPI_authRequired(t *testing.T) {
	srv := setupServer(t)

	for _, path := range []string{"/v1/resources", "/v1/quizzes", "/v1/discussions", "/v1/conversations", "/v1/progress", "/v1/social"} {
		rec := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAPI_resources(t *testing.T) {
	srv := setupServer(t)
	teacher := login(t, srv, "teacher1", "flip123")
	student := login(t, srv, "student1", "learn123")

	rec := do(t, srv, http.MethodGet, "/v1/resources", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resources []resource.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resources))
	assert.Len(t, resources, len(fixtures.Resources()))

	// students cannot publish
	nr := resource.NewResource{Title: "Fractions Drill", Module: "Mathematics", Type: "link", URL: "https://drills.test/fractions"}
	rec = do(t, srv, http.MethodPost, "/v1/resources", student.Token, nr)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// teachers can; uploadedBy comes from the token, not the payload
	rec = do(t, srv, http.MethodPost, "/v1/resources", teacher.Token, nr)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created resource.Resource
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "u1", created.UploadedBy)

	rec = do(t, srv, http.MethodGet, "/v1/resources", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resources))
	assert.Len(t, resources, len(fixtures.Resources())+1)

	// delete and update
	rec = do(t, srv, http.MethodDelete, "/v1/resources/"+created.ID, teacher.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, srv, http.MethodPut, "/v1/resources/"+created.ID, teacher.Token, map[string]string{"title": "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_quizzes(t *testing.T) {
	srv := setupServer(t)
	student := login(t, srv, "student1", "learn123")

	rec := do(t, srv, http.MethodPost, "/v1/quizzes/quiz-101/attempts", student.Token, SubmitAttemptRequest{Answers: []int{0, 1, 0}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sum quiz.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Score)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 67, sum.Percentage)
	require.Len(t, sum.Results, 3)
	assert.False(t, sum.Results[2].Correct)

	rec = do(t, srv, http.MethodPost, "/v1/quizzes/ghost/attempts", student.Token, SubmitAttemptRequest{Answers: []int{0}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/v1/quizzes/attempts", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history map[string][]quiz.Attempt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history["quiz-101"], 1)

	// quiz creation is teacher-only and validated
	nq := quiz.NewQuiz{Title: "Empty"}
	rec = do(t, srv, http.MethodPost, "/v1/quizzes", student.Token, nq)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	teacher := login(t, srv, "teacher1", "flip123")
	rec = do(t, srv, http.MethodPost, "/v1/quizzes", teacher.Token, nq)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_progressAndSocial(t *testing.T) {
	srv := setupServer(t)
	student := login(t, srv, "student1", "learn123")

	rec := do(t, srv, http.MethodPost, "/v1/progress/resources/r1/viewed", student.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, srv, http.MethodPost, "/v1/progress/resources/r1/completed", student.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/v1/progress", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rec2 progress.Progress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rec2))
	assert.Equal(t, []string{"r1"}, rec2.Views)
	assert.Equal(t, []string{"r1"}, rec2.Completed)

	rec = do(t, srv, http.MethodDelete, "/v1/progress", student.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// social toggles echo the resulting membership
	rec = do(t, srv, http.MethodPost, "/v1/social/following/u1", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled["active"])

	rec = do(t, srv, http.MethodPost, "/v1/social/following/u1", student.Token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.False(t, toggled["active"])
}

func TestAPI_forumAndChat(t *testing.T) {
	srv := setupServer(t)
	student := login(t, srv, "student1", "learn123")

	rec := do(t, srv, http.MethodPost, "/v1/discussions", student.Token, NewThreadRequest{LessonID: "r1", Title: "Question about the video"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var thread forum.Thread
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &thread))

	rec = do(t, srv, http.MethodPost, "/v1/discussions/"+thread.ID+"/posts", student.Token, NewPostRequest{Text: "Is the second example right?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &thread))
	require.Len(t, thread.Posts, 1)
	assert.Equal(t, "u3", thread.Posts[0].Author)

	rec = do(t, srv, http.MethodPost, "/v1/discussions/ghost/posts", student.Token, NewPostRequest{Text: "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// chat
	rec = do(t, srv, http.MethodPost, "/v1/conversations", student.Token, NewConversationRequest{Username: "teacher1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var convo chat.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &convo))
	assert.Equal(t, "u1", convo.Participant.ID)

	rec = do(t, srv, http.MethodPost, "/v1/conversations/"+convo.ID+"/messages", student.Token, NewMessageRequest{Text: "Hello!"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/v1/conversations/ghost/messages", student.Token, NewMessageRequest{Text: "Hello?"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/v1/conversations", student.Token, NewConversationRequest{Username: "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_sessionLifecycle(t *testing.T) {
	srv := setupServer(t)
	student := login(t, srv, "student1", "learn123")

	rec := do(t, srv, http.MethodGet, "/v1/users/me", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sess user.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, "u3", sess.ID)

	rec = do(t, srv, http.MethodPost, "/v1/users/logout", student.Token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// the token stays valid until expiry but the persisted session is gone
	rec = do(t, srv, http.MethodGet, "/v1/users/me", student.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_userDirectory(t *testing.T) {
	srv := setupServer(t)
	student := login(t, srv, "student1", "learn123")

	rec := do(t, srv, http.MethodGet, "/v1/users", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sessions []user.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Len(t, sessions, len(fixtures.Users()))

	rec = do(t, srv, http.MethodGet, "/v1/users/teacher1", student.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/v1/users/ghost", student.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
