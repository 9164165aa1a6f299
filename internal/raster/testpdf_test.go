package raster

import (
	"bytes"
	"fmt"
	"strings"
)

// buildPDF writes a minimal, well-formed PDF with n blank 100x200pt pages.
// extraTrailer is spliced into the trailer dictionary.
func buildPDF(n int, extraTrailer string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, n+2)
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	for i := 0; i < n; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 100 200] >>")
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R %s>>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, extraTrailer, xref)
	return buf.Bytes()
}

// encryptTrailer declares RC4 encryption with O/U values no password satisfies.
var encryptTrailer = "/Encrypt << /Filter /Standard /V 1 /R 2 /P -4 " +
	"/O <" + strings.Repeat("0", 62) + "ff> " +
	"/U <" + strings.Repeat("0", 62) + "ff> >> " +
	"/ID [<0123456789abcdef0123456789abcdef> <0123456789abcdef0123456789abcdef>] "
