package draft

import (
	"errors"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"
)

// Summary is a parsed draft.
type Summary struct {
	Subject string
	To      string
	Cc      string
	Unsent  bool
	Text    string
	HTML    string
}

// Read parses a draft written by Assemble or any other RFC 5322 message.
func Read(r io.Reader) (*Summary, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, errors.Join(ErrReadMessage, err)
	}
	defer func() { _ = mr.Close() }()

	s := &Summary{
		Unsent: strings.TrimSpace(mr.Header.Get(UnsentHeader)) == "1",
	}
	if s.Subject, err = mr.Header.Subject(); err != nil {
		return nil, errors.Join(ErrReadMessage, err)
	}
	if s.To, err = mr.Header.Text("To"); err != nil {
		return nil, errors.Join(ErrReadMessage, err)
	}
	if s.Cc, err = mr.Header.Text("Cc"); err != nil {
		return nil, errors.Join(ErrReadMessage, err)
	}

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(ErrReadMessage, err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		body, err := io.ReadAll(p.Body)
		if err != nil {
			return nil, errors.Join(ErrReadMessage, err)
		}

		switch contentType {
		case "text/plain":
			s.Text = string(body)
		case "text/html":
			s.HTML = string(body)
		}
	}

	return s, nil
}
