package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core/resource"
)

type resourceApi struct {
	svc *resource.Service
}

func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := resourceApi{svc: s.opts.ResourceSvc}

	rg := g.Group("/resources", jwt)
	rg.GET("", api.query)
	rg.POST("", api.create, teacherMiddleware())
	rg.PUT("/:id", api.update, teacherMiddleware())
	rg.DELETE("/:id", api.destroy, teacherMiddleware())
}

func (api *resourceApi) query(ctx echo.Context) error {
	resources, err := api.svc.Fetch()
	if err != nil {
		return errors.Wrap(err, "fetching resources")
	}
	return ctx.JSON(http.StatusOK, resources)
}

func (api *resourceApi) create(ctx echo.Context) error {
	var data resource.NewResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewResource")
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	data.UploadedBy = claims.Subject

	res, err := api.svc.Create(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *resourceApi) update(ctx echo.Context) error {
	var data resource.UpdateResource
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateResource")
	}
	res, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting resource")
	}
	return ctx.NoContent(http.StatusNoContent)
}
