package colour

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedToken is returned when a token is not '#' followed by six characters.
	ErrMalformedToken = errors.New("malformed colour token")
	// ErrInvalidHexDigit is returned when a channel character is not in [0-9a-fA-F].
	ErrInvalidHexDigit = errors.New("invalid hex digit")
)

// hexTokenLen is the length of a "#RRGGBB" token.
const hexTokenLen = 7

// TokenError describes why a single colour token could not be parsed.
type TokenError struct {
	Kind  error
	Token string
	// Position is the 1-based position of the token in a list, or 0 when
	// the token was parsed on its own.
	Position int
	// Offset is the index of the offending character within Token, or -1.
	Offset int
}

func (e *TokenError) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	if e.Position > 0 {
		fmt.Fprintf(&b, "colour %d ", e.Position)
	}
	fmt.Fprintf(&b, "%q: %s", e.Token, e.Kind.Error())
	if e.Offset >= 0 && e.Offset < len(e.Token) {
		fmt.Fprintf(&b, " %q at offset %d", e.Token[e.Offset], e.Offset)
	} else if errors.Is(e.Kind, ErrMalformedToken) {
		b.WriteString(" (expected #RRGGBB)")
	}
	return b.String()
}

func (e *TokenError) Unwrap() error { return e.Kind }

// ParseHex converts a "#RRGGBB" token into an RGB triplet. Hex digits are
// case-insensitive. No whitespace is trimmed.
func ParseHex(token string) (RGB, error) {
	if len(token) != hexTokenLen || token[0] != '#' {
		return RGB{}, &TokenError{Kind: ErrMalformedToken, Token: token, Offset: -1}
	}

	var channels [3]uint8
	for i := range channels {
		hiOffset := 1 + i*2
		hi, ok := hexNibble(token[hiOffset])
		if !ok {
			return RGB{}, &TokenError{Kind: ErrInvalidHexDigit, Token: token, Offset: hiOffset}
		}
		lo, ok := hexNibble(token[hiOffset+1])
		if !ok {
			return RGB{}, &TokenError{Kind: ErrInvalidHexDigit, Token: token, Offset: hiOffset + 1}
		}
		channels[i] = hi<<4 | lo
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// ParseHexList splits list on commas and parses every token in order.
// Parsing stops at the first bad token.
func ParseHexList(list string) (*Palette, error) {
	tokens := strings.Split(list, ",")
	colors := make([]RGB, 0, len(tokens))
	for i, token := range tokens {
		rgb, err := ParseHex(token)
		if err != nil {
			var tokErr *TokenError
			if errors.As(err, &tokErr) {
				tokErr.Position = i + 1
			}
			return nil, err
		}
		colors = append(colors, rgb)
	}
	return NewPalette(colors), nil
}

// hexNibble maps a single hex digit to its 4-bit value.
func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
