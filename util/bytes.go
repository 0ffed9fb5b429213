package util

// IntLowHigh encodes n as b little-endian bytes (low byte first). b is
// clamped to 1..4.
func IntLowHigh(n int, b int) []byte {
	if b < 1 {
		b = 1
	}
	if b > 4 {
		b = 4
	}

	out := make([]byte, b)
	for i := 0; i < b; i++ {
		out[i] = byte(n % 256)
		n = n / 256
	}
	return out
}

// Checksum8 returns the sum of data modulo 256.
func Checksum8(data []byte) byte {
	var sum byte
	for _, v := range data {
		sum += v
	}
	return sum
}

// Batched splits data into consecutive slices of at most size bytes. The
// slices alias data.
func Batched(data []byte, size int) [][]byte {
	if size < 1 {
		size = 1
	}
	out := make([][]byte, 0, (len(data)+size-1)/size)
	for len(data) > size {
		out = append(out, data[:size:size])
		data = data[size:]
	}
	if len(data) > 0 {
		out = append(out, data)
	}
	return out
}
