package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finlit-quest/backend/internal/repository"
)

func paginationContext(t *testing.T, query string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

// TestParsePaginationDefaults проверяет значения по умолчанию.
func TestParsePaginationDefaults(t *testing.T) {
	limit, offset, err := parsePagination(paginationContext(t, ""), 50, 200)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if limit != 50 || offset != 0 {
		t.Fatalf("expected 50/0, got %d/%d", limit, offset)
	}
}

// TestParsePaginationClampsLimit проверяет ограничение limit сверху.
func TestParsePaginationClampsLimit(t *testing.T) {
	limit, _, err := parsePagination(paginationContext(t, "limit=1000"), 50, 200)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if limit != 200 {
		t.Fatalf("expected limit 200, got %d", limit)
	}
}

// TestToAdminUserDerivesLevel проверяет, что уровень в админской выдаче
// выводится из XP, а не берется из базы.
func TestToAdminUserDerivesLevel(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
	}

	for _, tc := range cases {
		user := repository.AdminUser{
			Email:     "user@example.com",
			XP:        tc.xp,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}

		got := toAdminUser(user)
		if got.Level != tc.level {
			t.Fatalf("expected level %d for xp %d, got %d", tc.level, tc.xp, got.Level)
		}
		if got.XP != tc.xp {
			t.Fatalf("expected xp %d, got %d", tc.xp, got.XP)
		}
	}
}

// TestSplitPayload проверяет разделение валидного JSON и текстовых тел
// от неудачных вызовов провайдера.
func TestSplitPayload(t *testing.T) {
	raw, text := splitPayload([]byte(`{"ok":true}`))
	if string(raw) != `{"ok":true}` || text != nil {
		t.Fatalf("expected raw json, got raw=%q text=%v", raw, text)
	}

	raw, text = splitPayload([]byte("<html>502 Bad Gateway</html>"))
	if raw != nil {
		t.Fatalf("expected no json for html body, got %q", raw)
	}
	if text == nil || *text != "<html>502 Bad Gateway</html>" {
		t.Fatalf("expected html body preserved, got %v", text)
	}

	raw, text = splitPayload(nil)
	if raw != nil || text != nil {
		t.Fatalf("expected nil/nil for empty payload, got %q/%v", raw, text)
	}
}

// TestParsePaginationInvalid проверяет отказ на неверных параметрах.
func TestParsePaginationInvalid(t *testing.T) {
	if _, _, err := parsePagination(paginationContext(t, "limit=abc"), 50, 200); err == nil {
		t.Fatal("expected error for invalid limit")
	}

	if _, _, err := parsePagination(paginationContext(t, "offset=-1"), 50, 200); err == nil {
		t.Fatal("expected error for negative offset")
	}
}
