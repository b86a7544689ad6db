package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akbarovz/gadgethub/internal/email"
	"github.com/akbarovz/gadgethub/internal/errorz"
	"github.com/akbarovz/gadgethub/internal/krypto"
)

var (
	// ErrDuplicateUser indicates the username or email is already taken.
	ErrDuplicateUser = errors.New("duplicate user")
	// ErrInvalidCredentials indicates the email/password combination did
	// not match a user. It deliberately doesn't say which of the two was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	errRequired         = errors.New("is required")
	errPasswordMismatch = errors.New("passwords do not match")
)

// Registration is the input for registering a new user.
type Registration struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Credentials is the input for authenticating a user.
type Credentials struct {
	Email    string
	Password string
}

// Service provides the main rules for authentication.
type Service struct {
	store Store

	// comparisonHash is used to compare passwords when no user was found.
	comparisonHash krypto.Argon2Hash

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

func NewService(s Store) (*Service, error) {
	// Hash a random value once, so failed lookups have something real
	// to compare against.
	k, err := krypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	hash, err := krypto.HashArgon2(k.SecretValue())
	if err != nil {
		return nil, err
	}

	return &Service{
		store:          s,
		comparisonHash: hash,
		NowFunc:        time.Now,
	}, nil
}

// Register validates the registration input and creates a new user with
// an argon2id hash of the password. Uniqueness of username and email is
// enforced solely by the store's constraints: Register inserts and maps a
// constraint violation to ErrDuplicateUser, it never pre-checks. That
// keeps registration race-free under concurrent requests.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
	username := strings.TrimSpace(reg.Username)

	var invalid errorz.InvalidInput

	if username == "" {
		invalid = append(invalid, errorz.Keyed{Key: "Username", Err: errRequired})
	}

	addr, err := email.ParseAddress(reg.Email)
	if err != nil {
		invalid = append(invalid, errorz.Keyed{Key: "Email", Err: err})
	}

	pwd, err := ParsePassword(reg.Password)
	if err != nil {
		invalid = append(invalid, errorz.Keyed{Key: "Password", Err: err})
	} else if reg.Password != reg.ConfirmPassword {
		invalid = append(invalid, errorz.Keyed{Key: "ConfirmPassword", Err: errPasswordMismatch})
	}

	if len(invalid) > 0 {
		return User{}, invalid
	}

	pwdHash, err := pwd.Hash()
	if err != nil {
		return User{}, err
	}

	user := User{
		Username:     username,
		Email:        addr,
		PasswordHash: pwdHash,
		CreatedAt:    s.NowFunc(),
	}

	err = s.store.CreateUser(ctx, &user)
	if err != nil {
		if errors.Is(err, errorz.ErrConstraintViolated) {
			return User{}, ErrDuplicateUser
		}
		return User{}, err
	}

	return user, nil
}

// Authenticate checks if the provided credentials match a user and
// returns that user.
func (s *Service) Authenticate(ctx context.Context, c Credentials) (User, error) {
	addr, err := email.ParseAddress(c.Email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	pwd, err := ParsePassword(c.Password)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	users, err := s.store.FindUsers(ctx, &UserFilter{
		Emails: []email.Address{addr},
	})
	if err != nil {
		return User{}, err
	}

	if len(users) != 1 {
		// Even if no user is found we compare to a hash to prevent timing
		// differences that could result in user enumeration attacks.
		_ = pwd.Match(s.comparisonHash)
		return User{}, ErrInvalidCredentials
	}

	if !pwd.Match(users[0].PasswordHash) {
		return User{}, ErrInvalidCredentials
	}

	return users[0], nil
}
