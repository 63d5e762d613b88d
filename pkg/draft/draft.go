package draft

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/rollup/pkg/sanitizer"
)

// UnsentHeader marks a message as a draft for desktop mail clients.
const UnsentHeader = "X-Unsent"

// Message is the metadata and body of one draft.
type Message struct {
	To      string
	Cc      string
	Subject string
	HTML    string
}

var nonVisibleBlockRegex = regexp.MustCompile(`(?is)<(style|script|head)\b[^>]*>.*?</(style|script|head)>`)

// PlainText derives the text/plain body from an HTML document: invisible
// blocks and tags are dropped, common entities decoded, encoding artifacts
// removed and blank line runs collapsed.
func PlainText(html string) string {
	s := nonVisibleBlockRegex.ReplaceAllString(html, "")
	s = sanitizer.StripTags(s)
	s = sanitizer.UnescapeBasicEntities(s)
	s = sanitizer.StripArtifacts(s)
	s = sanitizer.CollapseBlankLines(s)
	return strings.TrimSpace(s)
}

// CleanHTML removes encoding artifacts from the HTML body.
func CleanHTML(html string) string {
	return sanitizer.StripArtifacts(html)
}

// NewMessage builds the MIME message for msg without writing it.
func NewMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Unencoded),
	)

	m.SetHeader(UnsentHeader, "1")
	m.SetHeader("Subject", msg.Subject)
	if to := strings.TrimSpace(msg.To); to != "" {
		m.SetHeader("To", to)
	}
	if cc := strings.TrimSpace(msg.Cc); cc != "" {
		m.SetHeader("Cc", cc)
	}

	m.SetBody("text/plain", PlainText(msg.HTML))
	m.AddAlternative("text/html", CleanHTML(msg.HTML))
	return m
}

// Write serializes msg to w.
func Write(w io.Writer, msg Message) error {
	if _, err := NewMessage(msg).WriteTo(w); err != nil {
		return errors.Join(ErrWriteMessage, err)
	}
	return nil
}

// Assemble writes msg to path and returns the path.
// A partially written file is removed on failure.
func Assemble(path string, msg Message) (string, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateFile, err)
	}

	if err := Write(f, msg); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", errors.Join(ErrWriteMessage, err)
	}
	return path, nil
}
