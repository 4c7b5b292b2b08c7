//go:build !opus

package audio

import (
	"fmt"
	"io"
)

func decodeOpus(io.ReadSeeker) ([]float32, error) {
	return nil, fmt.Errorf("%w: opus needs -tags opus", ErrNotSupported)
}
