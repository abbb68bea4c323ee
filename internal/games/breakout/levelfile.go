package breakout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Level file format:
//
//	byte 0      grid width in cells
//	byte 1      grid height in cells
//	byte 2...   ceil(width*height/2) bytes, two ids per byte; the high
//	            nibble holds the even cell index, the low nibble the odd one
//
// Cells are row-major: index = y*width + x.

// Level file errors.
var (
	ErrTruncated  = errors.New("level data truncated")
	ErrDimensions = errors.New("level dimensions out of range")
	ErrBlockID    = errors.New("block id out of range")
)

// MaxLevelSide is the largest width or height the format can hold.
const MaxLevelSide = 255

// packedSize returns the number of id bytes for a width x height level.
func packedSize(width, height int) int {
	return (width*height + 1) / 2
}

// EncodeLevel writes a level in the packed binary format.
func EncodeLevel(w io.Writer, l *Level) error {
	if l.Width < 0 || l.Width > MaxLevelSide || l.Height < 0 || l.Height > MaxLevelSide {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, l.Width, l.Height)
	}
	if len(l.IDs) != l.Width*l.Height {
		return fmt.Errorf("%w: %d ids for %dx%d", ErrDimensions, len(l.IDs), l.Width, l.Height)
	}

	buf := make([]byte, 2+packedSize(l.Width, l.Height))
	buf[0] = byte(l.Width)
	buf[1] = byte(l.Height)
	for i, id := range l.IDs {
		if id > IDMax {
			return fmt.Errorf("%w: %d at cell %d", ErrBlockID, id, i)
		}
		if i%2 == 0 {
			buf[2+i/2] |= id << 4
		} else {
			buf[2+i/2] |= id
		}
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	return nil
}

// DecodeLevel reads a level in the packed binary format. Bytes after the
// packed ids are ignored.
func DecodeLevel(r io.Reader) (*Level, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, truncated("header", err)
	}

	width, height := int(header[0]), int(header[1])
	packed := make([]byte, packedSize(width, height))
	if _, err := io.ReadFull(r, packed); err != nil {
		return nil, truncated("block data", err)
	}

	l := NewLevel("", "", width, height)
	for i := range l.IDs {
		b := packed[i/2]
		if i%2 == 0 {
			l.IDs[i] = b >> 4
		} else {
			l.IDs[i] = b & 0x0f
		}
	}
	return l, nil
}

func truncated(part string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrTruncated, part)
	}
	return fmt.Errorf("read level %s: %w", part, err)
}

// ReadLevelFile loads a level file. The level ID and name are taken from
// the file name.
func ReadLevelFile(path string) (*Level, error) {
	f, err := os.Open(path) //#nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close() //nolint:errcheck

	l, err := DecodeLevel(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Base(path)
	l.ID = strings.TrimSuffix(base, filepath.Ext(base))
	l.Name = l.ID
	return l, nil
}

// WriteLevelFile saves a level file, replacing any existing file.
func WriteLevelFile(path string, l *Level) error {
	f, err := os.Create(path) //#nosec G304 -- path is chosen by the user
	if err != nil {
		return fmt.Errorf("create level: %w", err)
	}

	if err := EncodeLevel(f, l); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close level: %w", err)
	}
	return nil
}
