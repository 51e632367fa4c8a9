package testutils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/voltkart/storefront/internal/api/middleware"
)

func CreateTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// MultipartForm builds a multipart body with text fields and image parts
// under the "images" key, returning the body and its content type.
type MultipartImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

func MultipartForm(fields map[string]string, images []MultipartImage) (*bytes.Buffer, string) {

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}

	for _, img := range images {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+img.Filename+`"`)
		header.Set("Content-Type", img.ContentType)

		part, _ := writer.CreatePart(header)
		_, _ = part.Write(img.Data)
	}

	_ = writer.Close()

	return body, writer.FormDataContentType()
}
