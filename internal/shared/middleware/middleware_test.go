package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotes-api/internal/shared/apperror"
	"quotes-api/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery(), ErrorHandler())
	return r
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, response.Body) {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body response.Body
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestErrorHandlerRendersAppError(t *testing.T) {
	r := newEngine()
	r.GET("/conflict", func(c *gin.Context) {
		_ = c.Error(apperror.New(http.StatusConflict, "DUPLICATE", "already exists").WithDetails(map[string]string{"name": "taken"}))
	})

	rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "DUPLICATE", body.Error.Code)
	assert.Equal(t, "already exists", body.Error.Message)
	assert.Equal(t, map[string]any{"name": "taken"}, body.Error.Details)
}

func TestErrorHandlerHidesUnknownErrors(t *testing.T) {
	r := newEngine()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: secret connection string"))
	})

	rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, apperror.CodeInternal, body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestErrorHandlerUnwrapsWrappedAppError(t *testing.T) {
	r := newEngine()
	r.GET("/down", func(c *gin.Context) {
		_ = c.Error(apperror.ErrStorageUnavailable.Wrap(errors.New("dial tcp: refused")))
	})

	rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apperror.CodeStorageUnavailable, body.Error.Code)
	assert.Equal(t, "storage unavailable", body.Error.Message)
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	r := newEngine()
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "fine")
		_ = c.Error(errors.New("late"))
	})

	rec, _ := serve(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	r := newEngine()
	r.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})

	rec, body := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, apperror.CodeInternal, body.Error.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine()
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generated", func(t *testing.T) {
		rec, _ := serve(r, httptest.NewRequest(http.MethodGet, "/id", nil))
		id := rec.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, "0b6f4c1e-2d55-4d8f-9a43-6f0e8a7c9b21")
		rec, _ := serve(r, req)
		assert.Equal(t, "0b6f4c1e-2d55-4d8f-9a43-6f0e8a7c9b21", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "0b6f4c1e-2d55-4d8f-9a43-6f0e8a7c9b21", rec.Body.String())
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec, _ := serve(r, req)
		id := rec.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "<script>", id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}
