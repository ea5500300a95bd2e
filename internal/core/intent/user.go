package intent

import "github.com/niksmo/storefront/internal/core/domain"

// A LoginUserSuccess is dispatched by the authentication collaborator.
type LoginUserSuccess struct {
	marker
	Customer domain.Customer
	Token    string
}

func (LoginUserSuccess) Name() string { return "[Account] Login User Success" }

type LogoutUser struct{ marker }

func (LogoutUser) Name() string { return "[Account] Logout User" }

type ClearError struct{ marker }

func (ClearError) Name() string { return "[Error] Clear Error" }
