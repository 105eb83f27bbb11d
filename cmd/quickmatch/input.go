package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Document is one side of a comparison
type Document struct {
	Name string // file path, "stdin" or "literal"
	Text string
}

var errBinaryInput = errors.New("input looks binary")

// loadDocument reads a document from a file path, or from stdin when the
// path is "-"
func loadDocument(path string, stdin io.Reader) (Document, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", name, err)
	}

	text, err := decodeText(data)
	if err != nil {
		return Document{}, fmt.Errorf("decoding %s: %w", name, err)
	}
	return Document{Name: name, Text: text}, nil
}

// literalDocument wraps text given on the command line
func literalDocument(text string) Document {
	return Document{Name: "literal", Text: text}
}

// decodeText converts file content to UTF-8, honouring UTF-8 and UTF-16
// byte order marks. Invalid UTF-8 becomes U+FFFD.
func decodeText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if looksBinary(data) {
		return "", errBinaryInput
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// looksBinary reports NUL bytes in content without a UTF-16 byte order mark
func looksBinary(data []byte) bool {
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	return bytes.IndexByte(sample, 0) >= 0
}

// composeNFC rewrites the text in canonical composed form so that "é" typed
// as e + combining accent matches a precomposed "é"
func composeNFC(doc Document) Document {
	doc.Text = norm.NFC.String(doc.Text)
	return doc
}

func displayName(doc Document) string {
	if doc.Name == "stdin" || doc.Name == "literal" {
		return doc.Name
	}
	return filepath.Base(doc.Name)
}
