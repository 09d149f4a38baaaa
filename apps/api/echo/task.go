package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/task"
)

type taskApi struct {
	service task.ServiceInterface
}

func registerTaskAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc task.ServiceInterface) {
	api := taskApi{service: svc}

	tg := g.Group("/tasks", jwt, roleMiddleware(auth.RoleOffice))
	tg.GET("", api.board)
	tg.GET("/:id", api.retrieve)
}

func (api *taskApi) board(ctx echo.Context) error {
	var filter task.BoardFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to BoardFilter")
	}
	var sorting Sorting
	sorting.Bind(ctx)
	filter.Sort = sorting.Key

	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	board, err := api.service.Board(ctx.Request().Context(), cred, filter)
	if err != nil {
		return errors.Wrap(err, "loading task board")
	}
	return ctx.JSON(http.StatusOK, board.View(board.Now))
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	t, err := api.service.Get(ctx.Request().Context(), cred, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "retrieving task")
	}
	return ctx.JSON(http.StatusOK, task.NewView(t, api.service.Now()))
}
