// Package clip reads screenshots from the system clipboard.
package clip

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"golang.design/x/clipboard"
)

// Kind classifies the outcome of a clipboard read.
type Kind int

const (
	// ImageFound means the clipboard held a decodable image.
	ImageFound Kind = iota
	// NoImage means the clipboard was readable but held no image.
	NoImage
	// ReadFailed means the clipboard could not be read or decoded.
	ReadFailed
)

func (k Kind) String() string {
	switch k {
	case ImageFound:
		return "image found"
	case NoImage:
		return "no image"
	case ReadFailed:
		return "read failed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrNoImage is carried by a NoImage result.
var ErrNoImage = errors.New("no image found in clipboard")

// Result is the outcome of a clipboard read.
type Result struct {
	Kind  Kind
	Image image.Image
	Err   error
}

// Found wraps a successfully read image.
func Found(img image.Image) Result {
	return Result{Kind: ImageFound, Image: img}
}

// Empty reports a clipboard with no image.
func Empty() Result {
	return Result{Kind: NoImage, Err: ErrNoImage}
}

// Failed reports a clipboard that could not be read.
func Failed(err error) Result {
	return Result{Kind: ReadFailed, Err: err}
}

// Reader reads an image from a clipboard.
type Reader interface {
	Read() Result
}

// System reads from the OS clipboard. The zero value is ready to use.
type System struct {
	once    sync.Once
	initErr error
}

// NewSystem returns a Reader backed by the OS clipboard.
func NewSystem() *System {
	return &System{}
}

// Read fetches the current clipboard image.
func (s *System) Read() Result {
	s.once.Do(func() {
		s.initErr = clipboard.Init()
	})
	if s.initErr != nil {
		return Failed(fmt.Errorf("clipboard unavailable: %w", s.initErr))
	}
	return Decode(clipboard.Read(clipboard.FmtImage))
}

// Decode turns raw clipboard bytes into a Result.
func Decode(data []byte) Result {
	if len(data) == 0 {
		return Empty()
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Failed(fmt.Errorf("decode clipboard image: %w", err))
	}
	return Found(img)
}
