package account

import (
	"context"
	"net/mail"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

var (
	// errors
	ErrNotFound        = errors.New("account not found")
	ErrTypeRequired    = errors.New("account type is required")
	errInvalidRequest  = errors.New("invalid request")
	errIncorrectPasswd = errors.New("incorrect password")
)

type (
	Repository interface {
		QueryAccounts(ctx context.Context, cred auth.Credential, typ Type, verified bool) ([]Account, error)
		VerifyAccount(ctx context.Context, cred auth.Credential, userID string) error
		DenyAccount(ctx context.Context, cred auth.Credential, typ Type, userID string) error
		TerminateAccount(ctx context.Context, cred auth.Credential, userID string) error
		DesignateAccount(ctx context.Context, cred auth.Credential, userID, section string) error
	}

	ServiceInterface interface {
		List(ctx context.Context, cred auth.Credential, filter ListFilter) ([]Account, error)
		Verify(ctx context.Context, cred auth.Credential, action Action) (Account, error)
		Deny(ctx context.Context, cred auth.Credential, action Action) (Account, error)
		Terminate(ctx context.Context, cred auth.Credential, action TerminateAction) (Account, error)
		Designate(ctx context.Context, cred auth.Credential, d Designation) (Account, error)
		Schools(ctx context.Context, cred auth.Credential) ([]School, error)
	}

	ListFilter struct {
		Tab  Tab
		Type Type `query:"type"`
	}

	Action struct {
		UserID string `json:"user_id" validate:"required"`
		Type   Type   `json:"type" validate:"omitempty,accounttype"`
	}

	TerminateAction struct {
		UserID   string `json:"user_id" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	Designation struct {
		UserID  string `json:"user_id" validate:"required"`
		Section string `json:"section" validate:"required,section"`
	}

	Service struct {
		repo       Repository
		auth       auth.Authenticator
		mailSvc    core.EmailService
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, authenticator auth.Authenticator, mailSvc core.EmailService, logger core.Logger) *Service {
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)
	return &Service{
		repo:       repo,
		auth:       authenticator,
		mailSvc:    mailSvc,
		logger:     logger,
		validate:   validate,
		translator: translator,
	}
}

func (svc *Service) validateStruct(s interface{}) error {
	if err := svc.validate.Struct(s); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return core.NewValidationError(errInvalidRequest, core.TranslateErrors(vErrs, svc.translator)...)
		}
		return err
	}
	return nil
}

// List returns the accounts of a tab. Filtering on every type queries both types at once and
// only fails when both queries fail.
func (svc *Service) List(ctx context.Context, cred auth.Credential, filter ListFilter) ([]Account, error) {
	typ := ParseType(string(filter.Type))
	if filter.Tab == TabDesignation {
		typ = TypeFocal
	}
	verified := filter.Tab.Verified()

	if typ != TypeAll {
		if !typ.Valid() {
			return nil, core.NewValidationError(errInvalidRequest, core.FieldError{Field: "type", Error: accountTypeText})
		}
		accounts, err := svc.query(ctx, cred, typ, verified)
		if err != nil {
			return nil, core.NewUnavailableError("accounts", err)
		}
		return accounts, nil
	}

	var (
		wg       sync.WaitGroup
		types    = []Type{TypeSchool, TypeFocal}
		results  = make([][]Account, len(types))
		failures = make([]error, len(types))
	)
	for i, t := range types {
		wg.Add(1)
		go func(i int, t Type) {
			defer wg.Done()
			results[i], failures[i] = svc.query(ctx, cred, t, verified)
		}(i, t)
	}
	wg.Wait()

	accounts := make([]Account, 0)
	var failed int
	for i, err := range failures {
		if err != nil {
			failed++
			svc.logger.Warn("listing "+string(types[i])+" accounts", err, cred)
			continue
		}
		accounts = append(accounts, results[i]...)
	}
	if failed == len(types) {
		return nil, core.NewUnavailableError("accounts", failures[0])
	}
	return accounts, nil
}

func (svc *Service) query(ctx context.Context, cred auth.Credential, typ Type, verified bool) ([]Account, error) {
	accounts, err := svc.repo.QueryAccounts(ctx, cred, typ, verified)
	if err != nil {
		return nil, err
	}
	out := make([]Account, 0, len(accounts))
	for _, acc := range accounts {
		acc.Type = typ
		out = append(out, acc)
	}
	return out, nil
}

// find looks up one account of the tab, in every type when typ is not concrete.
func (svc *Service) find(ctx context.Context, cred auth.Credential, tab Tab, typ Type, userID string) (Account, error) {
	accounts, err := svc.List(ctx, cred, ListFilter{Tab: tab, Type: typ})
	if err != nil {
		return Account{}, err
	}
	for _, acc := range accounts {
		if acc.ID() == userID {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

// Verify approves a pending registration request.
func (svc *Service) Verify(ctx context.Context, cred auth.Credential, action Action) (Account, error) {
	if err := svc.validateStruct(action); err != nil {
		return Account{}, err
	}
	acc, err := svc.find(ctx, cred, TabVerification, action.Type, action.UserID)
	if err != nil {
		return Account{}, err
	}
	if err := svc.repo.VerifyAccount(ctx, cred, action.UserID); err != nil {
		return Account{}, errors.Wrap(err, "verifying account "+action.UserID)
	}
	svc.notify(acc, "Your account has been verified", "account_verified", nil)
	return acc, nil
}

// Deny rejects a pending registration request. The backend keeps schools and focal persons
// apart, so the type is required.
func (svc *Service) Deny(ctx context.Context, cred auth.Credential, action Action) (Account, error) {
	if err := svc.validateStruct(action); err != nil {
		return Account{}, err
	}
	typ := ParseType(string(action.Type))
	if !typ.Valid() {
		return Account{}, core.NewValidationError(ErrTypeRequired, core.FieldError{Field: "type", Error: ErrTypeRequired.Error()})
	}
	acc, err := svc.find(ctx, cred, TabVerification, typ, action.UserID)
	if err != nil {
		return Account{}, err
	}
	if err := svc.repo.DenyAccount(ctx, cred, typ, action.UserID); err != nil {
		return Account{}, errors.Wrap(err, "denying account "+action.UserID)
	}
	svc.notify(acc, "Your registration request was declined", "account_denied", nil)
	return acc, nil
}

// Terminate deletes a verified account once the administrator's password is confirmed.
func (svc *Service) Terminate(ctx context.Context, cred auth.Credential, action TerminateAction) (Account, error) {
	if err := svc.validateStruct(action); err != nil {
		return Account{}, err
	}
	if _, err := svc.auth.Login(ctx, cred.Email, action.Password); err != nil {
		if errors.Cause(err) == auth.ErrInvalidCredentials {
			return Account{}, core.NewValidationError(errIncorrectPasswd, core.FieldError{Field: "password", Error: errIncorrectPasswd.Error()})
		}
		return Account{}, errors.Wrap(err, "confirming password")
	}
	acc, err := svc.find(ctx, cred, TabTermination, TypeAll, action.UserID)
	if err != nil {
		return Account{}, err
	}
	if err := svc.repo.TerminateAccount(ctx, cred, action.UserID); err != nil {
		return Account{}, errors.Wrap(err, "terminating account "+action.UserID)
	}
	svc.notify(acc, "Your account has been terminated", "account_terminated", nil)
	return acc, nil
}

// Designate assigns a verified focal person to a section.
func (svc *Service) Designate(ctx context.Context, cred auth.Credential, d Designation) (Account, error) {
	if err := svc.validateStruct(d); err != nil {
		return Account{}, err
	}
	section, _ := LookupSection(d.Section)
	acc, err := svc.find(ctx, cred, TabDesignation, TypeFocal, d.UserID)
	if err != nil {
		return Account{}, err
	}
	if err := svc.repo.DesignateAccount(ctx, cred, d.UserID, section); err != nil {
		return Account{}, errors.Wrap(err, "designating account "+d.UserID)
	}
	acc.SectionDesignation.SetValid(section)
	svc.notify(acc, "Your section designation was updated", "designation_updated", map[string]string{"Section": section})
	return acc, nil
}

// Schools lists the registered schools, built from the verified school accounts.
func (svc *Service) Schools(ctx context.Context, cred auth.Credential) ([]School, error) {
	accounts, err := svc.List(ctx, cred, ListFilter{Tab: TabTermination, Type: TypeSchool})
	if err != nil {
		return nil, err
	}
	return GroupSchools(accounts), nil
}

func (svc *Service) notify(acc Account, subject, tmpl string, extra map[string]string) {
	if acc.Email == "" || svc.mailSvc == nil {
		return
	}
	data := map[string]string{
		"Name":    acc.DisplayName(),
		"Type":    string(acc.Type),
		"Section": acc.Designation(),
	}
	for k, v := range extra {
		data[k] = v
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: acc.DisplayName(), Address: acc.Email}},
		Subject:      subject,
		TemplateName: tmpl,
		TemplateData: data,
	})
}
