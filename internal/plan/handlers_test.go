package plan

import (
	"bytes"
	"encoding/json"
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

func TestPlanHandlersCreate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO plans`).
		WithArgs(pgxmock.AnyArg(), "rt-1", "user-1", "metric", false, 0.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/plans"), NewService(mock), authStub)

	body, _ := json.Marshal(Plan{RouteID: "rt-1", Segments: twoSegments()})
	req := httptest.NewRequest(http.MethodPost, "/plans/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v %d", err, resp.StatusCode)
	}
}

func TestPlanHandlersCreateMissingRoute(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/plans"), NewService(nil), authStub)

	req := httptest.NewRequest(http.MethodPost, "/plans/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlanHandlersCreateInvalidSegments(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/plans"), NewService(nil), authStub)

	body, _ := json.Marshal(Plan{RouteID: "rt-1"})
	req := httptest.NewRequest(http.MethodPost, "/plans/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestPlanHandlersGenerate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	doc, _ := json.Marshal(rampRoute(20000))
	mock.ExpectQuery(`SELECT points FROM routes`).
		WithArgs("rt-1").
		WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(doc))
	mock.ExpectQuery(`INSERT INTO plans`).
		WithArgs(pgxmock.AnyArg(), "rt-1", "user-1", "metric", true, 10000.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/plans"), NewService(mock), authStub)

	body := []byte(`{"route_id":"rt-1","ftp_watts":250,"checkpoints_enabled":true,"checkpoint_interval_m":10000}`)
	req := httptest.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status: %v %d", err, resp.StatusCode)
	}
}

func TestPlanHandlersGenerateProfileFTP(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	// no ftp_watts in the request, so the rider's stored FTP drives the plan
	mock.ExpectQuery(`SELECT COALESCE\(ftp_watts, 0\) FROM users`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"ftp_watts"}).AddRow(250.0))

	doc, _ := json.Marshal(rampRoute(20000))
	mock.ExpectQuery(`SELECT points FROM routes`).
		WithArgs("rt-1").
		WillReturnRows(pgxmock.NewRows([]string{"points"}).AddRow(doc))
	mock.ExpectQuery(`INSERT INTO plans`).
		WithArgs(pgxmock.AnyArg(), "rt-1", "user-1", "metric", false, 0.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/plans"), NewService(mock), authStub)

	req := httptest.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader([]byte(`{"route_id":"rt-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status: %v %d", err, resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlanHandlersGenerateNoFTPAnywhere(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT COALESCE\(ftp_watts, 0\) FROM users`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"ftp_watts"}).AddRow(0.0))

	app := fiber.New()
	RegisterRoutes(app.Group("/plans"), NewService(mock), authStub)

	req := httptest.NewRequest(http.MethodPost, "/plans/generate", bytes.NewReader([]byte(`{"route_id":"rt-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}
