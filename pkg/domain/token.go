package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownTokenStatus = errors.New("unknown token status")

type TokenStatus string

const (
	TokenActive   TokenStatus = "active"
	TokenInactive TokenStatus = "inactive"
)

func (s TokenStatus) String() string {
	return string(s)
}

func AsTokenStatus(s string) (TokenStatus, error) {
	switch TokenStatus(s) {
	case TokenActive, TokenInactive:
		return TokenStatus(s), nil
	default:
		return TokenStatus(s), fmt.Errorf("%w: %s", ErrUnknownTokenStatus, s)
	}
}

// Token is an API token owned by a user.
type Token struct {
	ID        string
	UserUID   uuid.UUID
	Name      string
	Status    TokenStatus
	CreatedAt time.Time
}
