package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/user"
)

type userApi struct {
	svc      *user.Service
	conf     *core.Config
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := userApi{
		svc:      s.opts.UserSvc,
		conf:     s.opts.Conf,
		validate: s.opts.Validate,
	}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.POST("/logout", api.logout)
	ag.GET("/me", api.me)
	ag.GET("", api.roster)
	ag.GET("/:username", api.find)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  user.Session `json:"user"`
}

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Authenticate(data.Username, data.Password)
	if err != nil {
		return err
	}
	token, err := generateToken(api.conf, getSessionClaims(api.conf, sess))
	if err != nil {
		return errors.Wrap(err, "signing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: sess})
}

func (api *userApi) logout(ctx echo.Context) error {
	if err := api.svc.Logout(); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) me(ctx echo.Context) error {
	sess, ok, err := api.svc.Current()
	if err != nil {
		return errors.Wrap(err, "reading session")
	}
	if !ok {
		return errUnauthorized
	}
	return ctx.JSON(http.StatusOK, sess)
}

func (api *userApi) roster(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Roster())
}

func (api *userApi) find(ctx echo.Context) error {
	sess, ok := api.svc.Find(ctx.Param("username"))
	if !ok {
		return errHTTPNotFound
	}
	return ctx.JSON(http.StatusOK, sess)
}
