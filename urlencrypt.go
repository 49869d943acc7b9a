package dymo

import (
	"context"
	"strings"
)

// EncryptedURL is the server's url-encrypt response.
type EncryptedURL struct {
	Original string `json:"original"`
	Code     string `json:"code"`
	Encrypt  string `json:"encrypt"`
}

// EncryptURL asks the server to encrypt the given URL. The URL must use
// the http or https scheme.
func (c *Client) EncryptURL(ctx context.Context, rawURL string, opts ...CallOption) (*EncryptedURL, error) {
	if !strings.HasPrefix(rawURL, "https://") && !strings.HasPrefix(rawURL, "http://") {
		return nil, &BadRequestError{Message: "you must provide a valid url"}
	}

	fallback, err := applyCallOptions(opts).fallbackJSON()
	if err != nil {
		return nil, err
	}

	var result EncryptedURL
	if err := c.api.EncryptURL(ctx, rawURL, fallback, &result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}
