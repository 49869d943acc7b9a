package dymo

import "context"

// SanitizedFormats flags the well-known formats the input matches.
type SanitizedFormats struct {
	ASCII    bool `json:"ascii"`
	Date     bool `json:"date"`
	Domain   bool `json:"domain"`
	Email    bool `json:"email"`
	Emoji    bool `json:"emoji"`
	HexColor bool `json:"hexColor"`
	IPv4     bool `json:"ipv4"`
	IPv6     bool `json:"ipv6"`
	Phone    bool `json:"phone"`
	URL      bool `json:"url"`
}

// SanitizedIncludes flags character classes and injection patterns found
// in the input.
type SanitizedIncludes struct {
	Spaces    bool `json:"spaces"`
	SQL       bool `json:"hasSql"`
	NoSQL     bool `json:"hasNoSql"`
	Letters   bool `json:"letters"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Symbols   bool `json:"symbols"`
	Digits    bool `json:"digits"`
}

// SanitizedInput is the server's sanitization response.
type SanitizedInput struct {
	Input    string            `json:"input"`
	Formats  SanitizedFormats  `json:"formats"`
	Includes SanitizedIncludes `json:"includes"`
}

// SanitizeInput submits input to the server-side sanitizer, which
// classifies its format and flags injection patterns.
func (c *Client) SanitizeInput(ctx context.Context, input string, opts ...CallOption) (*SanitizedInput, error) {
	if input == "" {
		return nil, &BadRequestError{Message: "you must specify at least the input"}
	}

	fallback, err := applyCallOptions(opts).fallbackJSON()
	if err != nil {
		return nil, err
	}

	var result SanitizedInput
	if err := c.api.SanitizeInput(ctx, input, fallback, &result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}
