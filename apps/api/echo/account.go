package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/account"
)

type accountApi struct {
	service account.ServiceInterface
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc account.ServiceInterface) {
	api := accountApi{service: svc}

	ag := g.Group("/accounts", jwt, adminMiddleware())
	ag.GET("/:tab", api.list)
	ag.POST("/verify", api.verify)
	ag.POST("/deny", api.deny)
	ag.POST("/terminate", api.terminate)
	ag.PUT("/designation", api.designate)

	g.GET("/schools", api.schools, jwt, adminMiddleware())
	g.GET("/sections", api.sections, jwt)
}

type (
	// AccountView is an account with the fields the account pages display.
	AccountView struct {
		account.Account
		DisplayName string `json:"display_name"`
		Affiliation string `json:"affiliation"`
		Contact     string `json:"contact"`
		Designation string `json:"designation"`
	}

	SchoolView struct {
		Slug     string        `json:"slug"`
		Name     string        `json:"school_name"`
		Address  string        `json:"school_address"`
		Accounts []AccountView `json:"accounts"`
	}

	ActionResponse struct {
		Success bool        `json:"success"`
		Account AccountView `json:"account"`
	}
)

func newAccountView(acc account.Account) AccountView {
	return AccountView{
		Account:     acc,
		DisplayName: acc.DisplayName(),
		Affiliation: acc.Affiliation(),
		Contact:     acc.PhoneOrEmpty(),
		Designation: acc.Designation(),
	}
}

func newAccountViews(accounts []account.Account) []AccountView {
	views := make([]AccountView, 0, len(accounts))
	for _, acc := range accounts {
		views = append(views, newAccountView(acc))
	}
	return views
}

func (api *accountApi) list(ctx echo.Context) error {
	tab, ok := account.ParseTab(ctx.Param("tab"))
	if !ok {
		return errHttpNotFound
	}
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}

	filter := account.ListFilter{Tab: tab, Type: account.Type(ctx.QueryParam("type"))}
	accounts, err := api.service.List(ctx.Request().Context(), cred, filter)
	if err != nil {
		return errors.Wrap(err, "listing accounts")
	}
	return ctx.JSON(http.StatusOK, newAccountViews(accounts))
}

func (api *accountApi) verify(ctx echo.Context) error {
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	var data account.Action
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Action")
	}
	acc, err := api.service.Verify(ctx.Request().Context(), cred, data)
	return actionResponse(ctx, acc, errors.Wrap(err, "verifying account"))
}

func (api *accountApi) deny(ctx echo.Context) error {
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	var data account.Action
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Action")
	}
	acc, err := api.service.Deny(ctx.Request().Context(), cred, data)
	return actionResponse(ctx, acc, errors.Wrap(err, "denying account"))
}

func (api *accountApi) terminate(ctx echo.Context) error {
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	var data account.TerminateAction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TerminateAction")
	}
	acc, err := api.service.Terminate(ctx.Request().Context(), cred, data)
	return actionResponse(ctx, acc, errors.Wrap(err, "terminating account"))
}

func (api *accountApi) designate(ctx echo.Context) error {
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	var data account.Designation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Designation")
	}
	acc, err := api.service.Designate(ctx.Request().Context(), cred, data)
	return actionResponse(ctx, acc, errors.Wrap(err, "designating account"))
}

// actionResponse answers an account action. errors.Wrap(nil) is nil.
func actionResponse(ctx echo.Context, acc account.Account, err error) error {
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ActionResponse{Success: true, Account: newAccountView(acc)})
}

func (api *accountApi) schools(ctx echo.Context) error {
	cred, err := getContextCredential(ctx)
	if err != nil {
		return err
	}
	schools, err := api.service.Schools(ctx.Request().Context(), cred)
	if err != nil {
		return errors.Wrap(err, "listing schools")
	}

	views := make([]SchoolView, 0, len(schools))
	for _, s := range schools {
		views = append(views, SchoolView{
			Slug:     s.Slug,
			Name:     s.Name,
			Address:  s.Address,
			Accounts: newAccountViews(s.Accounts),
		})
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *accountApi) sections(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, account.Sections)
}
