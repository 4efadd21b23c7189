package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	// read the file into a byte slice
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filename, data)
}

// Decompress inflates data according to the extension of name. Data with
// an unknown extension is returned as is.
func Decompress(name string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error
	r := bytes.NewReader(data)

	// try to assert the compression type from the file extension
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(r)
	case ".zip":
		zipReader, zerr := zip.NewReader(r, int64(len(data)))
		if zerr != nil {
			return nil, zerr
		}
		if len(zipReader.File) == 0 {
			return nil, fmt.Errorf("%s: empty archive", name)
		}

		// read the first file in the zip file
		decoder, err = zipReader.File[0].Open()
	case ".7z":
		szReader, serr := sevenzip.NewReader(r, int64(len(data)))
		if serr != nil {
			return nil, serr
		}
		if len(szReader.File) == 0 {
			return nil, fmt.Errorf("%s: empty archive", name)
		}

		// read the first file in the archive
		decoder, err = szReader.File[0].Open()
	default:
		// return the data as is
		return data, nil
	}
	if err != nil {
		return nil, err
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read the decompressed data into a byte slice
	return io.ReadAll(decoder)
}

// InnerName returns the name the payload of an archive should be treated
// as, by stripping a trailing compression extension.
func InnerName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".zip", ".7z":
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
