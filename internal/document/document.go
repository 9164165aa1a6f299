// Package document models an uploaded file as an ordered list of page images
// plus the text recognized for each page so far.
package document

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Kind is the upload type.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
)

// Accepted upload extensions.
var extensions = map[string]Kind{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".bmp":  KindImage,
	".pdf":  KindPDF,
}

// KindOf classifies filename by extension.
func KindOf(filename string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	k, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q: accepted jpg, jpeg, png, bmp, pdf", ext)
	}
	return k, nil
}

// Page is one image of a document. Image and Data are fixed at creation.
type Page struct {
	Number int
	Image  image.Image
	// Data is the payload sent for recognition: the uploaded bytes for images,
	// the rendered PNG for PDF pages.
	Data        []byte
	ContentType string
	// Text is the last recognized text; Processed reports whether any call succeeded.
	Text      string
	Processed bool
}

// Document is an upload owned by one session.
type Document struct {
	ID       string
	Filename string
	Kind     Kind
	Pages    []*Page
}

// Page returns the 1-based page n.
func (d *Document) Page(n int) (*Page, bool) {
	if n < 1 || n > len(d.Pages) {
		return nil, false
	}
	return d.Pages[n-1], true
}

// Combine renders processed pages as "--- Page N ---\n<text>\n" sections joined
// by a blank line. Pages never processed, or whose text is empty, are omitted.
func (d *Document) Combine() string {
	sections := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		if !p.Processed || p.Text == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("--- Page %d ---\n%s\n", p.Number, p.Text))
	}
	return strings.Join(sections, "\n")
}
