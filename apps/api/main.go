package main

import (
	"log"
	"os"

	echoapi "github.com/flipspace/flipspace/apps/api/echo"
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
	logsvc "github.com/flipspace/flipspace/services/logger"
	"github.com/flipspace/flipspace/storage"
	"github.com/flipspace/flipspace/storage/kv"
	"github.com/flipspace/flipspace/storage/kv/filekv"
	"github.com/flipspace/flipspace/storage/kv/memkv"
	"github.com/flipspace/flipspace/storage/kv/sqlkv"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)

	backend, closeBackend, err := openBackend(conf)
	if err != nil {
		logger.Fatal("opening storage backend", err)
	}
	defer closeBackend()
	store := storage.New(backend)

	validate, translator := core.NewValidator()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// set up services; fixtures back every collection until its first write
	roster := fixtures.Users()
	seedResources := fixtures.Resources()

	usrSvc := user.NewService(store, roster, conf)
	socialSvc := social.NewService(store)
	resourceSvc := resource.NewService(store, seedResources, store, roster, mailSvc, validate, conf)
	quizSvc := quiz.NewService(store, fixtures.Quizzes(), validate, conf)
	forumSvc := forum.NewService(store, fixtures.Discussions(), conf)
	chatSvc := chat.NewService(store, fixtures.Conversations(), conf)
	progressSvc := progress.NewService(store, store, seedResources, conf)
	activitySvc := activity.NewService(store, conf)

	logger.Info("starting API server on " + conf.Server.Addr)
	app := echoapi.NewServer(&echoapi.Options{
		Conf:        conf,
		Logger:      logger,
		Validate:    validate,
		Translator:  translator,
		UserSvc:     usrSvc,
		ResourceSvc: resourceSvc,
		QuizSvc:     quizSvc,
		ForumSvc:    forumSvc,
		ChatSvc:     chatSvc,
		ProgressSvc: progressSvc,
		SocialSvc:   socialSvc,
		ActivitySvc: activitySvc,
	})
	app.Start()
}

func openBackend(conf *core.Config) (kv.Backend, func(), error) {
	switch conf.StorageBackend {
	case core.StoragePostgres:
		backend, err := sqlkv.Open(conf.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() { _ = backend.Close() }, nil
	case core.StorageMemory:
		return memkv.Open(), func() {}, nil
	default:
		backend, err := filekv.Open(conf.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	}
}
