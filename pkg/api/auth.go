package api

import (
	"context"
	"net/http"

	"github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/validators"
)

// JoinRequest is the signup payload. Constraints mirror the backend's.
type JoinRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=20"`
	Name     string `json:"name" validate:"required,min=2,max=30"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateMemberRequest is the profile update payload. The backend requires
// every field, so callers merge before submitting.
type UpdateMemberRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=30"`
	Password string `json:"password"`
}

type loginResponse struct {
	Member User `json:"member"`
	// apiKey and accessToken are also echoed in the body; the session
	// cookie is the only credential this client uses.
}

// Join creates an account. It does not authenticate the session.
func (c *Client) Join(ctx context.Context, req JoinRequest) (User, error) {
	if err := validators.Struct(req); err != nil {
		return User{}, err
	}
	var user User
	if err := c.doJSON(ctx, "members.join", http.MethodPost, "/api/members/join", req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login authenticates and returns the member. The backend sets the session
// cookie on this response; the jar keeps it for subsequent calls.
func (c *Client) Login(ctx context.Context, req LoginRequest) (User, error) {
	if err := validators.Struct(req); err != nil {
		return User{}, err
	}
	var resp loginResponse
	if err := c.doJSON(ctx, "members.login", http.MethodPost, "/api/members/login", req, &resp); err != nil {
		return User{}, err
	}
	if resp.Member.ID == 0 {
		return User{}, errors.New(errors.CodeDependency, "login response carried no member")
	}
	return resp.Member, nil
}

// Logout clears the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "members.logout", http.MethodDelete, "/api/members/logout", nil, nil)
}

// MemberInfo resolves the identity behind the current session cookie.
func (c *Client) MemberInfo(ctx context.Context) (User, error) {
	var user User
	if err := c.doJSON(ctx, "members.info", http.MethodGet, "/api/members/info", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateMemberInfo submits the full profile and returns the authoritative
// member record.
func (c *Client) UpdateMemberInfo(ctx context.Context, req UpdateMemberRequest) (User, error) {
	if err := validators.Struct(req); err != nil {
		return User{}, err
	}
	var user User
	if err := c.doJSON(ctx, "members.update", http.MethodPut, "/api/members/info", req, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Withdraw deletes the account behind the current session.
func (c *Client) Withdraw(ctx context.Context) error {
	return c.doJSON(ctx, "members.withdraw", http.MethodDelete, "/api/members/withdraw", nil, nil)
}

type verifyPasswordRequest struct {
	Password string `json:"password"`
}

// VerifyPassword re-checks the current user's password. A mismatch reports
// false with a nil error; transport failures are returned as errors.
func (c *Client) VerifyPassword(ctx context.Context, password string) (bool, error) {
	err := c.doJSON(ctx, "members.verify_password", http.MethodPost, "/api/members/verify-password", verifyPasswordRequest{Password: password}, nil)
	if err == nil {
		return true, nil
	}
	if typed := errors.As(err); typed != nil {
		switch typed.Code() {
		case errors.CodeUnauthorized, errors.CodeValidation, errors.CodeForbidden:
			return false, nil
		}
	}
	return false, err
}
