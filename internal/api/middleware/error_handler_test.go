package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/JSHWJ/QA-helper/internal/pkg/errors"
	"github.com/JSHWJ/QA-helper/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/t", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	return w
}

func TestErrorHandler_AppError(t *testing.T) {
	w := serve(func(c *gin.Context) {
		c.Error(apperrors.NotFound("DICTIONARY_NOT_FOUND", "저장된 딕셔너리 파일이 없습니다"))
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "DICTIONARY_NOT_FOUND" {
		t.Fatalf("code = %q", body["code"])
	}
	if body["message"] == "" {
		t.Fatal("message empty")
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	w := serve(func(c *gin.Context) {
		c.Error(errors.New("boom"))
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "INTERNAL_ERROR" {
		t.Fatalf("code = %q", body["code"])
	}
}

func TestErrorHandler_NoErrorPassesThrough(t *testing.T) {
	w := serve(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/t", func(c *gin.Context) {
		if GetRequestID(c.Request.Context()) == "" {
			t.Error("request id missing from context")
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("response header missing request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "given-id" {
		t.Fatalf("request id = %q", got)
	}
}
