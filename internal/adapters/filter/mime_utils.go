package filter

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"

	"github.com/mikey/spam-insight/internal/core"
)

// maxPartDepth bounds multipart recursion
const maxPartDepth = 5

var wordDecoder = new(mime.WordDecoder)

// ParseEmail parses a raw RFC 5322 message into an Email. The body is the
// decoded text content: text/plain parts, or text/html parts when the message
// has no plain text
func ParseEmail(raw []byte) (*core.Email, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email message: %w", err)
	}

	body, err := extractText(textproto.MIMEHeader(msg.Header), msg.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text content: %w", err)
	}

	email := &core.Email{
		Headers: make(map[string][]string, len(msg.Header)),
		From:    msg.Header.Get("From"),
		Subject: decodeHeader(msg.Header.Get("Subject")),
		Body:    body,
	}
	for key, values := range msg.Header {
		email.Headers[key] = values
	}
	if to, err := msg.Header.AddressList("To"); err == nil {
		for _, addr := range to {
			email.To = append(email.To, addr.Address)
		}
	}

	return email, nil
}

// decodeHeader decodes RFC 2047 encoded words, returning the input unchanged
// when it cannot be decoded
func decodeHeader(value string) string {
	decoded, err := wordDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// extractText returns the text content of a message or part
func extractText(header textproto.MIMEHeader, body io.Reader) (string, error) {
	plain, html, err := collectText(header, body, 0)
	if err != nil {
		return "", err
	}
	if plain != "" {
		return plain, nil
	}
	return html, nil
}

func collectText(header textproto.MIMEHeader, body io.Reader, depth int) (string, string, error) {
	mediaType, params, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		// No or broken Content-Type means plain text
		mediaType = "text/plain"
	}

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		boundary := params["boundary"]
		if boundary == "" || depth >= maxPartDepth {
			return "", "", nil
		}
		return collectParts(multipart.NewReader(body, boundary), depth)
	case mediaType == "text/plain":
		text, err := decodeBody(header, body)
		return text, "", err
	case mediaType == "text/html":
		text, err := decodeBody(header, body)
		return "", text, err
	default:
		// Attachments and other media
		return "", "", nil
	}
}

func collectParts(mr *multipart.Reader, depth int) (string, string, error) {
	var plain, html strings.Builder
	for {
		part, err := mr.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Truncated multipart: keep what was read so far
			if plain.Len() > 0 || html.Len() > 0 {
				break
			}
			return "", "", err
		}

		p, h, err := collectText(part.Header, part, depth+1)
		if err != nil {
			continue
		}
		appendPart(&plain, p)
		appendPart(&html, h)
	}
	return plain.String(), html.String(), nil
}

func appendPart(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(text)
}

func decodeBody(header textproto.MIMEHeader, body io.Reader) (string, error) {
	switch strings.ToLower(strings.TrimSpace(header.Get("Content-Transfer-Encoding"))) {
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// splitMessage splits raw at the blank line ending the header section. header
// keeps its final line break
func splitMessage(raw []byte) (header, body []byte) {
	crlf := bytes.Index(raw, []byte("\r\n\r\n"))
	lf := bytes.Index(raw, []byte("\n\n"))
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return raw[:crlf+2], raw[crlf+4:]
	case lf >= 0:
		return raw[:lf+1], raw[lf+2:]
	default:
		return raw, nil
	}
}

// dropHeaderFields removes the fields for which drop returns true, together
// with their folded continuation lines
func dropHeaderFields(header []byte, drop func(name string) bool) []byte {
	var out bytes.Buffer
	dropping := false
	for _, line := range bytes.SplitAfter(header, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			name, _, found := bytes.Cut(line, []byte(":"))
			dropping = found && drop(strings.TrimSpace(string(name)))
		}
		if !dropping {
			out.Write(line)
		}
	}
	return out.Bytes()
}
