package h5

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-hedm/store"
)

// Signature is the 8-byte HDF5 format signature: 0x89 H D F \r \n 0x1a \n.
var Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// Offsets searched for the signature, in order.
var signatureOffsets = []int64{0, 512, 1024, 2048}

// Sniff reports the offset of the HDF5 signature in r, or store.ErrNotHDF5.
func Sniff(r io.ReaderAt) (int64, error) {
	buf := make([]byte, len(Signature))
	for _, offset := range signatureOffsets {
		if _, err := r.ReadAt(buf, offset); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		if bytes.Equal(buf, Signature) {
			return offset, nil
		}
	}
	return 0, store.ErrNotHDF5
}

// SniffFile opens path and checks for the HDF5 signature.
func SniffFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := Sniff(f); err != nil {
		return fmt.Errorf("sniffing %s: %w", path, err)
	}
	return nil
}
