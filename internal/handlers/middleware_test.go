package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/session"
)

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSessionRequiredMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sess := session.New()

	router := gin.New()
	router.GET("/guarded", SessionRequiredMiddleware(sess), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := performRequest(router, http.MethodGet, "/guarded"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", w.Code)
	}

	sess.Install(models.User{BNNumber: "BN001", Role: models.RoleAssistant})
	if w := performRequest(router, http.MethodGet, "/guarded"); w.Code != http.StatusOK {
		t.Errorf("expected 200 with session, got %d", w.Code)
	}
}

func TestRequireRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sess := session.New()

	router := gin.New()
	router.GET("/admin", RequireRoleMiddleware(sess, models.RoleExamCoordinator), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := performRequest(router, http.MethodGet, "/admin"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", w.Code)
	}

	sess.Install(models.User{BNNumber: "BN001", Role: models.RoleAssistant})
	if w := performRequest(router, http.MethodGet, "/admin"); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %d", w.Code)
	}

	sess.Install(models.User{BNNumber: "BN002", Role: models.RoleExamCoordinator})
	if w := performRequest(router, http.MethodGet, "/admin"); w.Code != http.StatusOK {
		t.Errorf("expected 200 for coordinator, got %d", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := performRequest(router, http.MethodGet, "/")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
	if w.Body.String() == "" {
		t.Error("expected request_id in context")
	}
}
