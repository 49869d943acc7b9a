package dymo

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dymoapi/client-go/internal/api"
)

// Bounds accepted by the password policy endpoint.
const (
	maxBannedWords = 10
	minLengthFloor = 8
	minLengthCeil  = 32
	maxLengthFloor = 32
	maxLengthCeil  = 100
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._\-+]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

// PasswordRequest describes a password validation query. Only Password is
// required; zero-valued optional fields are omitted from the request.
type PasswordRequest struct {
	// Password is the candidate password.
	Password string
	// Email, when set, lets the server reject passwords derived from it.
	Email string
	// BannedWords is a list of at most 10 unique forbidden words.
	BannedWords []string
	// MinLength overrides the policy minimum; allowed range 8..32.
	MinLength int
	// MaxLength overrides the policy maximum; allowed range 32..100.
	MaxLength int
}

func (r *PasswordRequest) validate() error {
	if r.Password == "" {
		return &BadRequestError{Message: "you must specify at least the password"}
	}
	if r.Email != "" && !emailPattern.MatchString(r.Email) {
		return &BadRequestError{Message: "if you provide an email address it must be valid"}
	}
	if len(r.BannedWords) > maxBannedWords {
		return &BadRequestError{Message: fmt.Sprintf("the banned words list may not exceed %d words", maxBannedWords)}
	}
	seen := make(map[string]struct{}, len(r.BannedWords))
	for _, word := range r.BannedWords {
		if word == "" {
			return &BadRequestError{Message: "banned words must be non-empty strings"}
		}
		if _, dup := seen[word]; dup {
			return &BadRequestError{Message: "banned words must not repeat"}
		}
		seen[word] = struct{}{}
	}
	if r.MinLength != 0 && (r.MinLength < minLengthFloor || r.MinLength > minLengthCeil) {
		return &BadRequestError{Message: fmt.Sprintf("minimum length must be between %d and %d", minLengthFloor, minLengthCeil)}
	}
	if r.MaxLength != 0 && (r.MaxLength < maxLengthFloor || r.MaxLength > maxLengthCeil) {
		return &BadRequestError{Message: fmt.Sprintf("maximum length must be between %d and %d", maxLengthFloor, maxLengthCeil)}
	}
	return nil
}

// PasswordCheck is one policy rule evaluation from the server.
type PasswordCheck struct {
	Validation string `json:"validation"`
	Message    string `json:"message"`
}

// PasswordValidation is the server's password validation response.
type PasswordValidation struct {
	Valid    bool            `json:"valid"`
	Password string          `json:"password"`
	Details  []PasswordCheck `json:"details"`
}

// ValidatePassword checks a candidate password against the server-side
// strength policy.
func (c *Client) ValidatePassword(ctx context.Context, req PasswordRequest, opts ...CallOption) (*PasswordValidation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	fallback, err := applyCallOptions(opts).fallbackJSON()
	if err != nil {
		return nil, err
	}

	params := api.PasswordParams{
		Password:    req.Password,
		Email:       req.Email,
		BannedWords: req.BannedWords,
		MinLength:   req.MinLength,
		MaxLength:   req.MaxLength,
	}

	var result PasswordValidation
	if err := c.api.ValidatePassword(ctx, params, fallback, &result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}
