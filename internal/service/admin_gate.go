package service

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"

	"github.com/iliyamo/meeting-room-booking/internal/model"
	"github.com/iliyamo/meeting-room-booking/internal/utils"
)

// CredentialStore yields the admin account.  The hash scheme is bcrypt;
// its cost is a property of the stored hash.
type CredentialStore interface {
	AdminCredential(ctx context.Context) (model.AdminCredential, error)
}

// AdminGate checks submitted admin credentials.  It keeps no state; the
// caller decides how long a successful login lasts.
type AdminGate struct {
	creds CredentialStore
	log   *zap.Logger
}

func NewAdminGate(creds CredentialStore, log *zap.Logger) *AdminGate {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminGate{creds: creds, log: log}
}

// Authenticate reports whether username and password match the stored
// credential.  A missing hash never authenticates.
func (g *AdminGate) Authenticate(ctx context.Context, username, password string) (bool, error) {
	cred, err := g.creds.AdminCredential(ctx)
	if err != nil {
		return false, err
	}
	if cred.PasswordHash == "" {
		g.log.Warn("Admin login attempted but no password hash is configured")
		return false, nil
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(cred.Username)) == 1
	passOK := utils.VerifyPassword(cred.PasswordHash, password)
	if !userOK || !passOK {
		g.log.Info("Admin login rejected", zap.String("username", username))
		return false, nil
	}
	g.log.Info("Admin login accepted", zap.String("username", username))
	return true, nil
}
