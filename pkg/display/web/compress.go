//go:build !test

package web

import "github.com/google/brotli/go/cbrotli"

func compress(data []byte, quality int) ([]byte, error) {
	return cbrotli.Encode(data, cbrotli.WriterOptions{Quality: quality})
}
