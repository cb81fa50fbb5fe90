package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	ierr "go-smartshop/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// IdentityToolkitProvider signs users in with Firebase email/password accounts.
type IdentityToolkitProvider struct {
	relyingParty *identitytoolkit.RelyingpartyService
}

var _ Provider = IdentityToolkitProvider{}

func NewIdentityToolkitProvider(ctx context.Context, apiKey string) (IdentityToolkitProvider, error) {
	service, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return IdentityToolkitProvider{}, err
	}
	return IdentityToolkitProvider{relyingParty: service.Relyingparty}, nil
}

func (p IdentityToolkitProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	resp, err := p.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return Session{}, mapError(err)
	}

	return Session{
		UserId:       resp.LocalId,
		Email:        resp.Email,
		IdToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt(resp.ExpiresIn),
	}, nil
}

func (p IdentityToolkitProvider) SignUp(ctx context.Context, email, password string) (Session, error) {
	resp, err := p.relyingParty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return Session{}, mapError(err)
	}

	return Session{
		UserId:       resp.LocalId,
		Email:        resp.Email,
		IdToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt(resp.ExpiresIn),
	}, nil
}

func expiresAt(seconds int64) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Now().UTC().Add(time.Duration(seconds) * time.Second)
}

// mapError turns credential rejections into errors.InvalidCredentials.
func mapError(err error) error {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) || gErr.Code != http.StatusBadRequest {
		return err
	}

	for _, reason := range []string{"INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED"} {
		if strings.Contains(gErr.Message, reason) {
			return ierr.InvalidCredentials
		}
	}
	return err
}
