package forum

import (
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
)

var (
	// errors
	ErrThreadNotFound = errors.New("thread not found")
	ErrPostNotFound   = errors.New("post not found")
)

type (
	// Repository persists the Discussions collection wholesale.
	// ok == false on read means fall back to seed data.
	Repository interface {
		GetThreads() ([]Thread, bool, error)
		SetThreads([]Thread) error
	}

	Service struct {
		repo Repository
		seed []Thread

		lag time.Duration
	}
)

func NewService(repo Repository, seed []Thread, conf *core.Config) *Service {
	return &Service{
		repo: repo,
		seed: seed,
		lag:  conf.Latency,
	}
}

func (svc *Service) current() ([]Thread, error) {
	stored, ok, err := svc.repo.GetThreads()
	if err != nil {
		return nil, err
	}
	if ok {
		return stored, nil
	}
	out := make([]Thread, len(svc.seed))
	copy(out, svc.seed)
	return out, nil
}

func (svc *Service) Fetch() ([]Thread, error) {
	core.SimulateLatency(svc.lag)
	return svc.current()
}

func (svc *Service) CreateThread(lessonID, title string) (Thread, error) {
	core.SimulateLatency(svc.lag)

	threads, err := svc.current()
	if err != nil {
		return Thread{}, err
	}
	thread := Thread{
		ID:       "t-" + uuid.New().String(),
		LessonID: lessonID,
		Title:    core.CleanString(title),
		Posts:    []Post{},
	}
	if err := svc.repo.SetThreads(append(threads, thread)); err != nil {
		return Thread{}, pkgerrors.Wrap(err, "persisting threads")
	}
	return thread, nil
}

// CreatePost appends a post to the thread and returns the updated thread.
func (svc *Service) CreatePost(threadID, author, authorName, text string) (Thread, error) {
	core.SimulateLatency(svc.lag)

	threads, err := svc.current()
	if err != nil {
		return Thread{}, err
	}
	for i := range threads {
		if threads[i].ID != threadID {
			continue
		}
		threads[i].Posts = append(threads[i].Posts, Post{
			ID:         "p-" + uuid.New().String(),
			Author:     author,
			AuthorName: authorName,
			Text:       text,
			CreatedAt:  time.Now().UTC(),
			Replies:    []Reply{},
		})
		if err := svc.repo.SetThreads(threads); err != nil {
			return Thread{}, pkgerrors.Wrap(err, "persisting threads")
		}
		return threads[i], nil
	}
	return Thread{}, ErrThreadNotFound
}

// CreateReply appends a reply to a post and returns the updated thread.
func (svc *Service) CreateReply(threadID, postID, author, authorName, text string) (Thread, error) {
	core.SimulateLatency(svc.lag)

	threads, err := svc.current()
	if err != nil {
		return Thread{}, err
	}
	for i := range threads {
		if threads[i].ID != threadID {
			continue
		}
		for j := range threads[i].Posts {
			if threads[i].Posts[j].ID != postID {
				continue
			}
			threads[i].Posts[j].Replies = append(threads[i].Posts[j].Replies, Reply{
				ID:         "re-" + uuid.New().String(),
				Author:     author,
				AuthorName: authorName,
				Text:       text,
				CreatedAt:  time.Now().UTC(),
			})
			if err := svc.repo.SetThreads(threads); err != nil {
				return Thread{}, pkgerrors.Wrap(err, "persisting threads")
			}
			return threads[i], nil
		}
		return Thread{}, ErrPostNotFound
	}
	return Thread{}, ErrThreadNotFound
}
