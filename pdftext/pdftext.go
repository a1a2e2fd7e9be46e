// Package pdftext turns statement files into ordered page strings.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/rs/zerolog"
	"github.com/zaparse/stmtledger/logger"
)

var ErrNoPages = errors.New("pdftext: document has no pages")

// Pages reads a PDF and returns one string per page, rows joined by
// newlines. A page whose text cannot be read is kept as an empty string so
// page positions stay stable.
func Pages(ctx context.Context, reader io.Reader) ([]string, error) {
	log := logger.FromContext(ctx, zerolog.Nop())

	rAt, size, err := readerAt(reader)
	if err != nil {
		return nil, err
	}
	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, fmt.Errorf("pdftext: open: %w", err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, ErrNoPages
	}
	pages := make([]string, 0, numPages)

	for no := 1; no <= numPages; no++ {
		rows, err := r.Page(no).GetTextByRow()
		if err != nil {
			log.Warn().Err(err).Int("page", no).Msg("skipping unreadable page")
			pages = append(pages, "")
			continue
		}

		var page strings.Builder
		for _, row := range rows {
			var line strings.Builder
			for i, text := range row.Content {
				line.WriteString(text.S)
				if i < len(row.Content)-1 {
					line.WriteByte(' ')
				}
			}
			if line.Len() > 0 {
				page.WriteString(line.String())
				page.WriteByte('\n')
			}
		}
		pages = append(pages, page.String())
	}
	return pages, nil
}

// File opens path and reads its pages. Files ending in .pdf are parsed as
// PDF; anything else is treated as plain text with form feeds between pages.
func File(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if IsPDF(path) {
		return Pages(ctx, f)
	}
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return SplitText(string(raw)), nil
}

// SplitText splits extracted text on form feeds.
func SplitText(text string) []string {
	return strings.Split(text, "\f")
}

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}

func readerAt(reader io.Reader) (io.ReaderAt, int64, error) {
	if v, ok := reader.(interface {
		io.ReaderAt
		io.Seeker
	}); ok {
		end, err := v.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, err
		}
		return v, end, nil
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, 0, err
	}
	b := buf.Bytes()
	return bytes.NewReader(b), int64(len(b)), nil
}
