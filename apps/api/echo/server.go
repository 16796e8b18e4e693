package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/activity"
	"github.com/flipspace/flipspace/core/chat"
	"github.com/flipspace/flipspace/core/forum"
	"github.com/flipspace/flipspace/core/progress"
	"github.com/flipspace/flipspace/core/quiz"
	"github.com/flipspace/flipspace/core/resource"
	"github.com/flipspace/flipspace/core/social"
	"github.com/flipspace/flipspace/core/user"
)

type (
	Options struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc     *user.Service
		ResourceSvc *resource.Service
		QuizSvc     *quiz.Service
		ForumSvc    *forum.Service
		ChatSvc     *chat.Service
		ProgressSvc *progress.Service
		SocialSvc   *social.Service
		ActivitySvc *activity.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		jwt  middleware.JWTConfig
		quit chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
		jwt:  newJWTConfig(opts.Conf),
		quit: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.jwt)

	registerUserAPI(v1, jwt, s)
	registerResourceAPI(v1, jwt, s)
	registerQuizAPI(v1, jwt, s)
	registerForumAPI(v1, jwt, s)
	registerChatAPI(v1, jwt, s)
	registerSocialAPI(v1, jwt, s)
	registerProgressAPI(v1, jwt, s)
}

func (s *server) Start() {
	go func() {
		if err := s.app.Start(s.opts.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Fatal(err)
		}
	}()

	signal.Notify(s.quit, os.Interrupt, syscall.SIGTERM)
	<-s.quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown is handed to the error handler so an unrecoverable error can
// trigger a graceful stop.
func (s *server) signalShutdown() {
	s.quit <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the FlipSpace API!")
}
