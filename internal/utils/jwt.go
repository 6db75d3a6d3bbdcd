package utils // package utils provides helpers for admin sessions and password hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed session tokens
    "github.com/google/uuid"
)

// RoleAdmin is the only role carried by session tokens.
const RoleAdmin = "ADMIN"

// AdminSession represents a signed admin session token along with its
// expiry and session ID.  The Token field is what the client presents back,
// either in the Authorization header or in the admin_session cookie.
type AdminSession struct {
    Token     string
    SessionID string
    Exp       time.Time
}

// SessionClaims are the validated claims of an admin session token.
type SessionClaims struct {
    Username  string
    Role      string
    SessionID string
}

// NewAdminSession builds and signs an HS256 JWT for the admin user.  The
// token carries the username as subject, the ADMIN role and a random
// session ID (sid).  ttl bounds how long the login lasts.
func NewAdminSession(secret, username string, ttl time.Duration) (AdminSession, error) {
    if secret == "" {
        return AdminSession{}, errors.New("empty signing secret")
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    sid := uuid.NewString()
    claims := jwt.MapClaims{
        "sub":  username,
        "role": RoleAdmin,
        "sid":  sid,
        "exp":  exp.Unix(),
        "iat":  now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AdminSession{}, err
    }
    return AdminSession{Token: signed, SessionID: sid, Exp: exp}, nil
}

// ParseAdminSession verifies the signature and expiry of raw and returns
// its claims.  Tokens signed with anything other than HMAC are rejected.
func ParseAdminSession(secret, raw string) (SessionClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return SessionClaims{}, errors.New("invalid session token")
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return SessionClaims{}, errors.New("invalid session claims")
    }
    sub, _ := claims["sub"].(string)
    role, _ := claims["role"].(string)
    sid, _ := claims["sid"].(string)
    if sub == "" || role == "" {
        return SessionClaims{}, errors.New("incomplete session claims")
    }
    return SessionClaims{Username: sub, Role: role, SessionID: sid}, nil
}
