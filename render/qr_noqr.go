//go:build noqr

package render

const qrSupported = false

func encodeQR(string) ([][]bool, error) {
	return nil, ErrQrUnavailable
}
