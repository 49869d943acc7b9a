package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Public endpoint paths.
const (
	pathPrayerTimes    = "/v1/public/islam/prayertimes"
	pathInputSanitizer = "/v1/public/inputSatinizer"
	pathValidPassword  = "/v1/public/validPwd"
	pathURLEncrypt     = "/v1/public/url-encrypt"
)

// PrayerTimes fetches the daily prayer schedule for a coordinate pair.
func (c *Client) PrayerTimes(ctx context.Context, lat, lon float64, fallback []byte, result any) error {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.Get(ctx, pathPrayerTimes, query, fallback, result)
}

// SanitizeInput submits input for sanitization and classification.
func (c *Client) SanitizeInput(ctx context.Context, input string, fallback []byte, result any) error {
	query := url.Values{}
	query.Set("input", input)
	return c.Get(ctx, pathInputSanitizer, query, fallback, result)
}

// PasswordParams carries the query parameters for password validation.
// Zero-valued optional fields are omitted from the request.
type PasswordParams struct {
	Password    string
	Email       string
	BannedWords []string
	MinLength   int
	MaxLength   int
}

// ValidatePassword checks a password against the server's policy.
func (c *Client) ValidatePassword(ctx context.Context, params PasswordParams, fallback []byte, result any) error {
	query := url.Values{}
	query.Set("password", params.Password)
	if params.Email != "" {
		query.Set("email", params.Email)
	}
	if len(params.BannedWords) > 0 {
		query.Set("bannedWords", strings.Join(params.BannedWords, ","))
	}
	if params.MinLength > 0 {
		query.Set("min", strconv.Itoa(params.MinLength))
	}
	if params.MaxLength > 0 {
		query.Set("max", strconv.Itoa(params.MaxLength))
	}
	return c.Get(ctx, pathValidPassword, query, fallback, result)
}

// EncryptURL asks the server to encrypt the given URL.
func (c *Client) EncryptURL(ctx context.Context, rawURL string, fallback []byte, result any) error {
	query := url.Values{}
	query.Set("url", rawURL)
	return c.Get(ctx, pathURLEncrypt, query, fallback, result)
}
