package share

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrLinkTooLongForCode means the link exceeds QR code capacity. The link
// itself is still usable.
var ErrLinkTooLongForCode = errors.New("share: link too long for a QR code")

// TerminalCode renders link as a QR code drawn with half-block characters.
func TerminalCode(link string) (string, error) {
	q, err := qrcode.New(link, qrcode.Low)
	if err != nil {
		return "", mapCodeError(err)
	}
	return q.ToSmallString(false), nil
}

// PNGCode renders link as a square PNG QR code of the given pixel size.
func PNGCode(link string, size int) ([]byte, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, mapCodeError(err)
	}
	return png, nil
}

func mapCodeError(err error) error {
	if strings.Contains(err.Error(), "too long") {
		return fmt.Errorf("%w: %v", ErrLinkTooLongForCode, err)
	}
	return fmt.Errorf("render QR code: %w", err)
}
