package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core/activity"
	"github.com/flipspace/flipspace/core/progress"
)

type progressApi struct {
	svc      *progress.Service
	activity *activity.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := progressApi{svc: s.opts.ProgressSvc, activity: s.opts.ActivitySvc}

	pg := g.Group("/progress", jwt)
	pg.GET("", api.get)
	pg.DELETE("", api.reset)
	pg.POST("/resources/:id/viewed", api.markViewed)
	pg.POST("/resources/:id/completed", api.markComplete)

	ag := g.Group("/activity", jwt)
	ag.GET("", api.activities)
	ag.POST("", api.logActivity)
}

func (api *progressApi) get(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	rec, err := api.svc.Get(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching progress")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *progressApi) reset(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Reset(claims.Subject); err != nil {
		return errors.Wrap(err, "resetting progress")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *progressApi) markViewed(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.MarkViewed(claims.Subject, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "marking resource viewed")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *progressApi) markComplete(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.MarkComplete(claims.Subject, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "marking resource complete")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type LogActivityRequest struct {
	Type    string          `json:"type"`
	Details json.RawMessage `json:"details"`
}

func (api *progressApi) logActivity(ctx echo.Context) error {
	var data LogActivityRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LogActivityRequest")
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if err := api.activity.Log(claims.Subject, data.Type, data.Details); err != nil {
		return errors.Wrap(err, "logging activity")
	}
	return ctx.NoContent(http.StatusAccepted)
}

func (api *progressApi) activities(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	entries, err := api.activity.ByUser(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching activity log")
	}
	return ctx.JSON(http.StatusOK, entries)
}
