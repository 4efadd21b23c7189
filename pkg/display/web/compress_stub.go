//go:build test

package web

import "errors"

func compress([]byte, int) ([]byte, error) {
	return nil, errors.New("web: compression is not built into test binaries")
}
