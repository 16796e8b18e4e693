package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/chat"
	"github.com/flipspace/flipspace/core/user"
)

type chatApi struct {
	svc      *chat.Service
	users    *user.Service
	validate *validator.Validate
}

func registerChatAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	api := chatApi{svc: s.opts.ChatSvc, users: s.opts.UserSvc, validate: s.opts.Validate}

	cg := g.Group("/conversations", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.POST("/:id/messages", api.send)
}

func (api *chatApi) query(ctx echo.Context) error {
	conversations, err := api.svc.Fetch()
	if err != nil {
		return errors.Wrap(err, "fetching conversations")
	}
	return ctx.JSON(http.StatusOK, conversations)
}

type NewConversationRequest struct {
	Username string `json:"username" validate:"required"`
}

func (api *chatApi) create(ctx echo.Context) error {
	var data NewConversationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewConversationRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	target, ok := api.users.Find(data.Username)
	if !ok {
		return errHTTPNotFound
	}
	convo, err := api.svc.Create(chat.Participant{ID: target.ID, Name: target.Name, Role: target.Role})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, convo)
}

type NewMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (api *chatApi) send(ctx echo.Context) error {
	var data NewMessageRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessageRequest")
	}
	data.Text = core.CleanString(data.Text)
	if err := api.validate.Struct(&data); err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	msg, err := api.svc.Send(ctx.Param("id"), chat.NewMessage{
		SenderID:   claims.Subject,
		SenderName: claims.Name,
		Text:       data.Text,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}
