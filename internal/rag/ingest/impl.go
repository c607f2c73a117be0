package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
	"github.com/gabriel-vasile/mimetype"
)

var errNoText = errors.New("no extractable text")

const (
	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	odtMIME  = "application/vnd.oasis.opendocument.text"

	// mimetype inspects at most this many leading bytes
	sniffLimit = 3072
)

var officeExtensions = map[string]bool{".docx": true, ".odt": true}

// ExtractDocument reads the file at path into a normalized Document.
// The type is sniffed from the content. The extension only settles zip
// archives whose office entries lie past the sniffed head.
func ExtractDocument(path string) (commonModels.Document, error) {
	log := logger_i.NewLogger("Document Extraction").With("path", path)

	doc := commonModels.Document{
		Name: filepath.Base(path),
		Path: path,
	}

	docType, err := getDocType(path)
	if err != nil {
		return doc, &quizErrors.DocumentError{Path: path, Err: err}
	}
	doc.ContentType = docType
	log.Debug("Processing document", "type", docType)

	pages, err := extractText(path, docType, log)
	if err != nil {
		return doc, &quizErrors.DocumentError{Path: path, Err: err}
	}
	doc.Pages = pages
	doc.Text = NormalizeText(pages)
	if doc.Text == "" {
		return doc, &quizErrors.DocumentError{Path: path, Err: errNoText}
	}

	log.Debug("Processing document", "pages", len(pages), "characters", len(doc.Text))
	return doc, nil
}

func getDocType(docPath string) (commonModels.DocType, error) {
	f, err := os.Open(docPath)
	if err != nil {
		return commonModels.ERR, err
	}
	defer f.Close()

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return commonModels.ERR, err
	}
	return sniffDocType(docPath, head[:n]), nil
}

func sniffDocType(docPath string, head []byte) commonModels.DocType {
	if len(head) == 0 {
		return commonModels.ERR
	}
	mtype := mimetype.Detect(head)
	switch {
	case mtype.Is("application/pdf"):
		return commonModels.PDF
	case mtype.Is(docxMIME), mtype.Is(odtMIME), mtype.Is("text/rtf"):
		return commonModels.DOCX
	case descendsFrom(mtype, "application/zip") && officeExtensions[strings.ToLower(filepath.Ext(docPath))]:
		// office archive whose entries fall outside the sniffed head
		return commonModels.DOCX
	case descendsFrom(mtype, "text/plain"):
		return commonModels.TXT
	}
	return commonModels.ERR
}

func descendsFrom(mtype *mimetype.MIME, target string) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(target) {
			return true
		}
	}
	return false
}

func extractText(path string, contentType commonModels.DocType, log *logger_i.Logger) ([]commonModels.Page, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path, log)
	case commonModels.DOCX:
		return extractOffice(path, log)
	case commonModels.TXT:
		return extractPlainText(path)
	default:
		return nil, fmt.Errorf("unsupported content type for %s", filepath.Base(path))
	}
}
