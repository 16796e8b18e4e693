package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core/quiz"
)

type quizApi struct {
	svc *quiz.Service
}

func registerQuizAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := quizApi{svc: s.opts.QuizSvc}

	qg := g.Group("/quizzes", jwt)
	qg.GET("", api.query)
	qg.POST("", api.create, teacherMiddleware())
	qg.GET("/attempts", api.attempts)
	qg.POST("/:id/attempts", api.submit)
}

func (api *quizApi) query(ctx echo.Context) error {
	quizzes, err := api.svc.Fetch()
	if err != nil {
		return errors.Wrap(err, "fetching quizzes")
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	qz, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, qz)
}

type SubmitAttemptRequest struct {
	Answers []int `json:"answers"`
}

func (api *quizApi) submit(ctx echo.Context) error {
	var data SubmitAttemptRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitAttemptRequest")
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	summary, err := api.svc.Submit(claims.Subject, ctx.Param("id"), data.Answers)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *quizApi) attempts(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	history, err := api.svc.AttemptsByUser(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching attempts")
	}
	return ctx.JSON(http.StatusOK, history)
}
