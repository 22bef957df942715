package formupload_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/formupload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode reads a Body back into fields and file names.
func decode(t *testing.T, b *formupload.Body) (map[string][]string, map[string]string) {
	t.Helper()
	_, params, err := mime.ParseMediaType(b.ContentType())
	require.NoError(t, err)
	mr := multipart.NewReader(b.Reader(), params["boundary"])
	fields := map[string][]string{}
	files := map[string]string{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, _ := io.ReadAll(p)
		if p.FileName() != "" {
			files[p.FormName()] = p.FileName() + ":" + string(data)
			continue
		}
		fields[p.FormName()] = append(fields[p.FormName()], string(data))
	}
	return fields, files
}

func TestFromRequest_OnlySubmittedFields(t *testing.T) {
	form := url.Values{"title": {"Hello"}, "tags": {"a", "b"}}
	req := httptest.NewRequest("PUT", "/dashboard/blogs/1/edit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	b, err := formupload.FromRequest(req, []string{"title", "content", "tags"}, "image", 0)
	require.NoError(t, err)

	fields, files := decode(t, b)
	assert.Equal(t, []string{"Hello"}, fields["title"])
	assert.Equal(t, []string{"a", "b"}, fields["tags"])
	_, sent := fields["content"]
	assert.False(t, sent, "content was not submitted and must not be forwarded")
	assert.Empty(t, files)
	assert.False(t, b.HasFile())
}

func TestFromRequest_CheckboxAlwaysSent(t *testing.T) {
	form := url.Values{"title": {"Ad"}}
	req := httptest.NewRequest("POST", "/dashboard/ads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	b, err := formupload.FromRequest(req, []string{"title", "isActive?"}, "", 0)
	require.NoError(t, err)
	fields, _ := decode(t, b)
	assert.Equal(t, []string{"false"}, fields["isActive"])

	form.Set("isActive", "on")
	req = httptest.NewRequest("POST", "/dashboard/ads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	b, err = formupload.FromRequest(req, []string{"title", "isActive?"}, "", 0)
	require.NoError(t, err)
	fields, _ = decode(t, b)
	assert.Equal(t, []string{"true"}, fields["isActive"])
}

func TestFromRequest_OmitBlank(t *testing.T) {
	form := url.Values{"title": {"Ad"}, "startDate": {""}, "endDate": {"2025-01-31"}}
	req := httptest.NewRequest("POST", "/dashboard/ads", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	b, err := formupload.FromRequest(req, []string{"title", "startDate~", "endDate~"}, "", 0)
	require.NoError(t, err)
	fields, _ := decode(t, b)
	_, sent := fields["startDate"]
	assert.False(t, sent)
	assert.Equal(t, []string{"2025-01-31"}, fields["endDate"])
	assert.Equal(t, []string{"title", "endDate"}, b.Fields())
}

func TestFromRequest_WithFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Banner"))
	fw, err := mw.CreateFormFile("image", "banner.png")
	require.NoError(t, err)
	fw.Write([]byte("PNGDATA"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/dashboard/ads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	b, err := formupload.FromRequest(req, []string{"title"}, "image", 0)
	require.NoError(t, err)
	assert.True(t, b.HasFile())

	fields, files := decode(t, b)
	assert.Equal(t, []string{"Banner"}, fields["title"])
	assert.Equal(t, "banner.png:PNGDATA", files["image"])
}

func TestFromRequest_EmptyFileIsNotForwarded(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Keep image"))
	_, err := mw.CreateFormFile("image", "")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("PUT", "/dashboard/blogs/1/edit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	b, err := formupload.FromRequest(req, []string{"title"}, "image", 0)
	require.NoError(t, err)
	assert.False(t, b.HasFile())
}

func TestFromRequest_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "big.jpg")
	fw.Write(bytes.Repeat([]byte("x"), 64<<10))
	mw.Close()

	req := httptest.NewRequest("POST", "/dashboard/ads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	_, err := formupload.FromRequest(req, nil, "image", 1024)
	assert.ErrorIs(t, err, formupload.ErrTooLarge)
}

func TestTooLargeMessage(t *testing.T) {
	assert.Equal(t, "Image is too large (max 10MB).", formupload.TooLargeMessage(0))
	assert.Equal(t, "Image is too large (max 5MB).", formupload.TooLargeMessage(5<<20))
	assert.Equal(t, "Image is too large (max 2.5MB).", formupload.TooLargeMessage(5<<19))
	assert.Equal(t, "Image is too large (max 1KB).", formupload.TooLargeMessage(1024))
	assert.Equal(t, "Image is too large (max 700 bytes).", formupload.TooLargeMessage(700))
}

func TestPreview(t *testing.T) {
	p := formupload.Preview{Original: "https://cdn/x.png"}
	assert.Equal(t, "https://cdn/x.png", p.URL())

	p.Choose("blob:local-1")
	assert.Equal(t, "blob:local-1", p.URL())
	assert.True(t, p.Pending())

	p.Clear()
	assert.Equal(t, "https://cdn/x.png", p.URL())
	assert.False(t, p.Pending())
}
