package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core/social"
)

type socialApi struct {
	svc *social.Service
}

func registerSocialAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := socialApi{svc: s.opts.SocialSvc}

	sg := g.Group("/social", jwt)
	sg.GET("", api.graph)
	sg.POST("/following/:id", api.toggle(api.svc.ToggleFollow))
	sg.GET("/following/:id", api.query(api.svc.IsFollowing))
	sg.POST("/favorites/:id", api.toggle(api.svc.ToggleFavorite))
	sg.GET("/favorites/:id", api.query(api.svc.IsFavorite))
	sg.POST("/blocked/:id", api.toggle(api.svc.ToggleBlock))
	sg.GET("/blocked/:id", api.query(api.svc.IsBlocked))
}

func (api *socialApi) graph(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	graph, err := api.svc.Graph(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching social graph")
	}
	return ctx.JSON(http.StatusOK, graph)
}

func (api *socialApi) toggle(fn func(currentID, targetID string) (bool, error)) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		active, err := fn(claims.Subject, ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "toggling social set")
		}
		return ctx.JSON(http.StatusOK, echo.Map{"active": active})
	}
}

func (api *socialApi) query(fn func(currentID, targetID string) (bool, error)) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		active, err := fn(claims.Subject, ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "querying social set")
		}
		return ctx.JSON(http.StatusOK, echo.Map{"active": active})
	}
}
