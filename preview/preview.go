// Package preview summarizes a selected file before it is uploaded.
// The summary is informational only and never gates an upload.
package preview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

var ErrNotPDF = errors.New("not a readable PDF")

type Info struct {
	Name  string
	Size  int64
	Pages int
}

func (i Info) String() string {
	if i.Pages == 1 {
		return fmt.Sprintf("%s (1 page)", i.Name)
	}
	return fmt.Sprintf("%s (%d pages)", i.Name, i.Pages)
}

// Inspect opens path as a PDF and reports its page count.
func Inspect(path string) (info Info, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	if fi.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory", path)
	}

	info = Info{Name: filepath.Base(path), Size: fi.Size()}

	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNotPDF, r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrNotPDF, err)
	}

	info.Pages = r.NumPage()
	return info, nil
}
