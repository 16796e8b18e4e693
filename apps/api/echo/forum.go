package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/forum"
)

type forumApi struct {
	svc      *forum.Service
	validate *validator.Validate
}

func registerForumAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := forumApi{svc: s.opts.ForumSvc, validate: s.opts.Validate}

	fg := g.Group("/discussions", jwt)
	fg.GET("", api.query)
	fg.POST("", api.createThread)
	fg.POST("/:id/posts", api.createPost)
	fg.POST("/:id/posts/:postID/replies", api.createReply)
}

func (api *forumApi) query(ctx echo.Context) error {
	threads, err := api.svc.Fetch()
	if err != nil {
		return errors.Wrap(err, "fetching discussions")
	}
	return ctx.JSON(http.StatusOK, threads)
}

type NewThreadRequest struct {
	LessonID string `json:"lessonId" validate:"required"`
	Title    string `json:"title" validate:"required"`
}

func (tr *NewThreadRequest) Validate(validate *validator.Validate) error {
	tr.Title = core.CleanString(tr.Title)
	return validate.Struct(tr)
}

func (api *forumApi) createThread(ctx echo.Context) error {
	var data NewThreadRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewThreadRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	thread, err := api.svc.CreateThread(data.LessonID, data.Title)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, thread)
}

type NewPostRequest struct {
	Text string `json:"text" validate:"required"`
}

func (pr *NewPostRequest) Validate(validate *validator.Validate) error {
	pr.Text = core.CleanString(pr.Text)
	return validate.Struct(pr)
}

func (api *forumApi) createPost(ctx echo.Context) error {
	var data NewPostRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPostRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	thread, err := api.svc.CreatePost(ctx.Param("id"), claims.Subject, claims.Name, data.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, thread)
}

func (api *forumApi) createReply(ctx echo.Context) error {
	var data NewPostRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPostRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	thread, err := api.svc.CreateReply(ctx.Param("id"), ctx.Param("postID"), claims.Subject, claims.Name, data.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, thread)
}
