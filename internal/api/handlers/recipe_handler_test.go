package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"wejv/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var webpImage = []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00\x30\x01\x00\x9d\x01\x2a\x01\x00\x01\x00")

func imageApp() *fiber.App {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		image, err := readImage(c)
		if err != nil {
			return presenters.AppErrorResponse(c, err, "invalid upload")
		}
		return c.JSON(fiber.Map{"bytes": len(image)})
	})
	return app
}

func multipartBody(t *testing.T, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	require.NoError(t, writer.WriteField("name", "Soep"))
	if image != nil {
		part, err := writer.CreateFormFile("image", "dish.webp")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestReadImage(t *testing.T) {
	withImage, withImageType := multipartBody(t, webpImage)
	withoutImage, withoutImageType := multipartBody(t, nil)
	png, pngType := multipartBody(t, []byte("\x89PNG\r\n\x1a\n0000"))

	truncated := "--xyz\r\nContent-Disposition: form-data; name=\"image\"; filename=\"dish.webp\"\r\n\r\nRIFF"

	tests := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
	}{
		{"webp upload", withImage.String(), withImageType, fiber.StatusOK},
		{"multipart without image", withoutImage.String(), withoutImageType, fiber.StatusOK},
		{"json body", `{"name":"Soep"}`, fiber.MIMEApplicationJSON, fiber.StatusOK},
		{"not webp", png.String(), pngType, fiber.StatusBadRequest},
		{"truncated multipart", truncated, "multipart/form-data; boundary=xyz", fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			resp, err := imageApp().Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
