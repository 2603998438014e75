package auth

import (
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	TerminalCode string `json:"terminal_code"`
	Secret       string `json:"secret"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TerminalCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "terminal_code",
			Message: "terminal_code is required",
		})
	}

	if validator.IsEmpty(r.Secret) {
		errs = append(errs, validator.ValidationError{
			Field:   "secret",
			Message: "secret is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	TerminalID  string `json:"terminal_id"`
	FactoryID   string `json:"factory_id"`
}
