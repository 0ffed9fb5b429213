//go:build !noqr

package render

import qrcode "github.com/skip2/go-qrcode"

const qrSupported = true

// encodeQR returns the module matrix without any quiet zone.
func encodeQR(content string) ([][]bool, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}
