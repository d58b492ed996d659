package filter

import (
	"strings"
	"testing"
)

func TestParseEmail(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "plain",
			raw:         "From: a@example.com\r\nTo: b@example.com\r\nSubject: Hello\r\n\r\nSee you at lunch.",
			wantSubject: "Hello",
			wantBody:    "See you at lunch.",
		},
		{
			name:        "encoded subject",
			raw:         "Subject: =?utf-8?q?Caf=C3=A9_tomorrow?=\r\n\r\nok",
			wantSubject: "Café tomorrow",
			wantBody:    "ok",
		},
		{
			name: "multipart prefers plain text",
			raw: "Subject: Offer\r\n" +
				"Content-Type: multipart/alternative; boundary=XX\r\n\r\n" +
				"--XX\r\nContent-Type: text/plain\r\nContent-Transfer-Encoding: quoted-printable\r\n\r\n" +
				"Win a FREE=20prize\r\n" +
				"--XX\r\nContent-Type: text/html\r\n\r\n<b>Win</b>\r\n" +
				"--XX--\r\n",
			wantSubject: "Offer",
			wantBody:    "Win a FREE prize",
		},
		{
			name: "html only",
			raw: "Content-Type: multipart/mixed; boundary=YY\r\n\r\n" +
				"--YY\r\nContent-Type: text/html\r\n\r\n<p>Click here</p>\r\n" +
				"--YY\r\nContent-Type: application/pdf\r\nContent-Transfer-Encoding: base64\r\n\r\nJVBERg==\r\n" +
				"--YY--\r\n",
			wantBody: "<p>Click here</p>",
		},
		{
			name: "nested multipart with base64",
			raw: "Content-Type: multipart/mixed; boundary=A\r\n\r\n" +
				"--A\r\nContent-Type: multipart/alternative; boundary=B\r\n\r\n" +
				"--B\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Transfer-Encoding: base64\r\n\r\n" +
				"TWVldCBhdCBub29u\r\n" +
				"--B--\r\n" +
				"--A--\r\n",
			wantBody: "Meet at noon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := ParseEmail([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ParseEmail: %v", err)
			}
			if email.Subject != tt.wantSubject {
				t.Errorf("got subject %q, want %q", email.Subject, tt.wantSubject)
			}
			if got := strings.TrimSpace(email.Body); got != tt.wantBody {
				t.Errorf("got body %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestParseEmailAddresses(t *testing.T) {
	email, err := ParseEmail([]byte("From: Ann <ann@example.com>\nTo: Bob <bob@example.com>, carol@example.com\n\nhi"))
	if err != nil {
		t.Fatalf("ParseEmail: %v", err)
	}
	if email.From != "Ann <ann@example.com>" {
		t.Errorf("got from %q", email.From)
	}
	if got := strings.Join(email.To, ","); got != "bob@example.com,carol@example.com" {
		t.Errorf("got to %q", got)
	}
}

func TestParseEmailInvalid(t *testing.T) {
	if _, err := ParseEmail([]byte("not a header line\r\n")); err == nil {
		t.Error("expected an error for a message without headers")
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantHeader string
		wantBody   string
	}{
		{"crlf", "A: 1\r\nB: 2\r\n\r\nbody\r\n", "A: 1\r\nB: 2\r\n", "body\r\n"},
		{"lf", "A: 1\n\nbody", "A: 1\n", "body"},
		{"lf before crlf", "A: 1\n\nbody\r\n\r\nmore", "A: 1\n", "body\r\n\r\nmore"},
		{"no body", "A: 1\r\n", "A: 1\r\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := splitMessage([]byte(tt.raw))
			if string(header) != tt.wantHeader || string(body) != tt.wantBody {
				t.Errorf("got %q / %q, want %q / %q", header, body, tt.wantHeader, tt.wantBody)
			}
		})
	}
}

func TestDropHeaderFields(t *testing.T) {
	header := "Subject: a long\r\n subject line\r\nX-Spam-Status: true\r\nFrom: a@example.com\r\n"
	got := dropHeaderFields([]byte(header), func(name string) bool {
		return strings.EqualFold(name, "subject") || strings.EqualFold(name, "x-spam-status")
	})
	if want := "From: a@example.com\r\n"; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
