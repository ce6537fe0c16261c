package colour

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  RGB
	}{
		{name: "white", token: "#FFFFFF", want: RGB{R: 255, G: 255, B: 255}},
		{name: "black", token: "#000000", want: RGB{R: 0, G: 0, B: 0}},
		{name: "mixed case", token: "#1a2B3c", want: RGB{R: 26, G: 43, B: 60}},
		{name: "lowercase", token: "#ff8000", want: RGB{R: 255, G: 128, B: 0}},
		{name: "digits only", token: "#102030", want: RGB{R: 16, G: 32, B: 48}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.token)
			if err != nil {
				t.Fatalf("ParseHex(%q) returned error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseHexEveryByte(t *testing.T) {
	for v := 0; v < 256; v++ {
		for _, format := range []string{"#%02x%02x%02x", "#%02X%02X%02X"} {
			token := fmt.Sprintf(format, v, 255-v, v)
			got, err := ParseHex(token)
			if err != nil {
				t.Fatalf("ParseHex(%q) returned error: %v", token, err)
			}
			want := RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v)}
			if got != want {
				t.Fatalf("ParseHex(%q) = %+v, want %+v", token, got, want)
			}
			if got.Hex() != strings.ToLower(token) {
				t.Fatalf("Hex() = %q, want %q", got.Hex(), strings.ToLower(token))
			}
		}
	}
}

func TestParseHexErrors(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantKind   error
		wantOffset int
	}{
		{name: "missing hash", token: "FFFFFF", wantKind: ErrMalformedToken, wantOffset: -1},
		{name: "hash in wrong place", token: "FFFFFF#", wantKind: ErrMalformedToken, wantOffset: -1},
		{name: "too short", token: "#FFF", wantKind: ErrMalformedToken, wantOffset: -1},
		{name: "too long", token: "#FFFFFFF", wantKind: ErrMalformedToken, wantOffset: -1},
		{name: "empty", token: "", wantKind: ErrMalformedToken, wantOffset: -1},
		{name: "leading space", token: " #FFFFF", wantKind: ErrMalformedToken, wantOffset: -1},
		{name: "invalid digits", token: "#ZZZZZZ", wantKind: ErrInvalidHexDigit, wantOffset: 1},
		{name: "invalid low nibble", token: "#FG0000", wantKind: ErrInvalidHexDigit, wantOffset: 2},
		{name: "invalid blue", token: "#00000x", wantKind: ErrInvalidHexDigit, wantOffset: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHex(tt.token)
			if err == nil {
				t.Fatalf("ParseHex(%q) expected error, got nil", tt.token)
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("ParseHex(%q) error = %v, want kind %v", tt.token, err, tt.wantKind)
			}
			var tokErr *TokenError
			if !errors.As(err, &tokErr) {
				t.Fatalf("expected *TokenError, got %T", err)
			}
			if tokErr.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", tokErr.Offset, tt.wantOffset)
			}
			if tokErr.Position != 0 {
				t.Errorf("Position = %d, want 0", tokErr.Position)
			}
		})
	}
}

func TestTokenErrorMessage(t *testing.T) {
	_, err := ParseHexList("#FFFFFF,#ZZ0000")
	if err == nil {
		t.Fatal("expected error")
	}
	want := `colour 2 "#ZZ0000": invalid hex digit 'Z' at offset 1`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	_, err = ParseHex("FFFFFF")
	want = `"FFFFFF": malformed colour token (expected #RRGGBB)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseHexList(t *testing.T) {
	palette, err := ParseHexList("#FFFFFF,#000000,#1a2B3c")
	if err != nil {
		t.Fatalf("ParseHexList returned error: %v", err)
	}

	want := []RGB{
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 0},
		{R: 26, G: 43, B: 60},
	}
	if palette.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", palette.Len(), len(want))
	}
	for i, c := range want {
		if palette.Colors[i] != c {
			t.Errorf("Colors[%d] = %+v, want %+v", i, palette.Colors[i], c)
		}
	}

	if got := palette.HexList(); got != "#ffffff,#000000,#1a2b3c" {
		t.Errorf("HexList() = %q", got)
	}
}

func TestParseHexListErrors(t *testing.T) {
	tests := []struct {
		name         string
		list         string
		wantKind     error
		wantPosition int
	}{
		{name: "empty list", list: "", wantKind: ErrMalformedToken, wantPosition: 1},
		{name: "trailing comma", list: "#FFFFFF,", wantKind: ErrMalformedToken, wantPosition: 2},
		{name: "space after comma", list: "#FFFFFF, #000000", wantKind: ErrMalformedToken, wantPosition: 2},
		{name: "bad digit third", list: "#FFFFFF,#000000,#00GG00", wantKind: ErrInvalidHexDigit, wantPosition: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette, err := ParseHexList(tt.list)
			if err == nil {
				t.Fatalf("ParseHexList(%q) expected error", tt.list)
			}
			if palette != nil {
				t.Errorf("expected nil palette on error, got %d colours", palette.Len())
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %v", err, tt.wantKind)
			}
			var tokErr *TokenError
			if errors.As(err, &tokErr) && tokErr.Position != tt.wantPosition {
				t.Errorf("Position = %d, want %d", tokErr.Position, tt.wantPosition)
			}
		})
	}
}

func TestHexNibble(t *testing.T) {
	for c := 0; c < 256; c++ {
		v, ok := hexNibble(byte(c))
		valid := strings.ContainsRune("0123456789abcdefABCDEF", rune(c))
		if ok != valid {
			t.Fatalf("hexNibble(%q) ok = %v, want %v", rune(c), ok, valid)
		}
		if ok && v > 15 {
			t.Fatalf("hexNibble(%q) = %d, out of range", rune(c), v)
		}
	}
}
