// Package formupload turns a submitted admin form into the multipart body
// the backend expects for blog and ad create/edit.
package formupload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

// DefaultMaxBytes caps an upload form (image included).
const DefaultMaxBytes = 10 << 20

// ErrTooLarge is returned when the form exceeds the size cap.
var ErrTooLarge = errors.New("upload is too large")

// TooLargeMessage is the text shown when an upload exceeds maxBytes.
func TooLargeMessage(maxBytes int64) string {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return fmt.Sprintf("Image is too large (max %s).", humanSize(maxBytes))
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d bytes", n)
}

// Body is an encoded multipart/form-data body.
type Body struct {
	buf         bytes.Buffer
	contentType string
	fields      []string
	file        string
}

// ContentType includes the boundary.
func (b *Body) ContentType() string { return b.contentType }

// Reader returns the encoded body.
func (b *Body) Reader() io.Reader { return bytes.NewReader(b.buf.Bytes()) }

// Fields lists the scalar fields that were forwarded, in order.
func (b *Body) Fields() []string { return b.fields }

// HasFile reports whether a new file was attached.
func (b *Body) HasFile() bool { return b.file != "" }

// FromRequest reads r as a multipart (or url-encoded) form and re-encodes
// the fields named in fields that were actually submitted, plus the file
// under fileField when one was chosen. Fields the form did not send are
// left out so the backend keeps their stored values; the stored image is
// kept the same way when no new file is chosen.
//
// A field repeated in the form (tags, for example) is forwarded once per
// value. A name ending in "?" is a checkbox: it is always sent, as "true"
// when checked and "false" otherwise. A name ending in "~" is sent only
// when its value is not blank (optional dates).
func FromRequest(r *http.Request, fields []string, fileField string, maxBytes int64) (*Body, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if tooLarge(err) {
				return nil, ErrTooLarge
			}
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		if tooLarge(err) {
			return nil, ErrTooLarge
		}
		return nil, fmt.Errorf("parse form: %w", err)
	}

	b := &Body{}
	w := multipart.NewWriter(&b.buf)

	for _, name := range fields {
		if cb, ok := strings.CutSuffix(name, "?"); ok {
			v := "false"
			if vals, _ := submitted(r, cb); len(vals) > 0 && vals[len(vals)-1] != "" && vals[len(vals)-1] != "false" {
				v = "true"
			}
			if err := w.WriteField(cb, v); err != nil {
				return nil, err
			}
			b.fields = append(b.fields, cb)
			continue
		}
		name, omitBlank := strings.CutSuffix(name, "~")
		vals, ok := submitted(r, name)
		if !ok || (omitBlank && strings.TrimSpace(strings.Join(vals, "")) == "") {
			continue
		}
		for _, v := range vals {
			if err := w.WriteField(name, v); err != nil {
				return nil, err
			}
		}
		b.fields = append(b.fields, name)
	}

	if fileField != "" && r.MultipartForm != nil {
		if fhs := r.MultipartForm.File[fileField]; len(fhs) > 0 && fhs[0].Size > 0 {
			fh := fhs[0]
			src, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("open upload: %w", err)
			}
			defer src.Close()

			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition",
				fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filepath.Base(fh.Filename)))
			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)

			part, err := w.CreatePart(h)
			if err != nil {
				return nil, err
			}
			if _, err := io.Copy(part, src); err != nil {
				return nil, fmt.Errorf("copy upload: %w", err)
			}
			b.file = fh.Filename
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	b.contentType = w.FormDataContentType()
	return b, nil
}

func submitted(r *http.Request, name string) ([]string, bool) {
	if r.MultipartForm != nil {
		if v, ok := r.MultipartForm.Value[name]; ok {
			return v, true
		}
	}
	v, ok := r.PostForm[name]
	return v, ok
}

// tooLarge matches the MaxBytesReader failure, which the multipart reader
// does not always wrap.
func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
