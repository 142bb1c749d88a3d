package authoriser

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobboardhq/jobs-api/internal/user"
)

// UserStore is the collaborator that owns credential storage.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
}

type Authoriser struct {
	users UserStore
}

type AuthRq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthRes struct {
	Username string
	Email    string
	IsAdmin  bool
	Valid    bool
}

func NewAuthoriser(users UserStore) Authoriser {
	return Authoriser{users: users}
}

// ValidAuthRequest checks the supplied credentials against the stored
// bcrypt hash. An unknown username and a wrong password are
// indistinguishable to the caller.
func (a Authoriser) ValidAuthRequest(ctx context.Context, authRq *AuthRq) AuthRes {
	u, err := a.users.GetUserByUsername(ctx, authRq.Username)
	if err != nil {
		return AuthRes{}
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(authRq.Password)) != nil {
		return AuthRes{}
	}
	return AuthRes{Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin, Valid: true}
}
