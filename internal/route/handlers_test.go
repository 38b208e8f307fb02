package route

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func authStub(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	return c.Next()
}

func multipartUpload(t *testing.T, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form: %v", err)
	}
	_ = w.WriteField("name", "Morning Loop")
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func TestRouteUploadHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Morning Loop", "gpx",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 3, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), NewService(mock), authStub)

	body, contentType := multipartUpload(t, "loop.gpx", []byte(sampleGPX))
	req := httptest.NewRequest(http.MethodPost, "/routes/", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status: %v %v", err, resp.StatusCode)
	}
}

func TestRouteUploadHandlerRejectsBadFile(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), NewService(nil), authStub)

	body, contentType := multipartUpload(t, "loop.tcx", []byte("whatever"))
	req := httptest.NewRequest(http.MethodPost, "/routes/", body)
	req.Header.Set("Content-Type", contentType)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestRouteUploadHandlerMissingFile(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), NewService(nil), authStub)

	req := httptest.NewRequest(http.MethodPost, "/routes/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRouteListAndDeleteHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, distance_m`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "distance_m", "elevation_gain_m", "point_count", "created_at"}).
			AddRow("rt-1", "Loop", 50000.0, 420.0, 9000, time.Now()))

	mock.ExpectExec(`DELETE FROM routes`).
		WithArgs("rt-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/routes"), NewService(mock), authStub)

	req := httptest.NewRequest(http.MethodGet, "/routes/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/routes/rt-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
}
