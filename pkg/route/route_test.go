package route

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := &Handler{
		Method:  http.MethodPost,
		Path:    "/ping",
		Handler: []gin.HandlerFunc{func(c *gin.Context) { c.JSON(200, gin.H{"pong": true}) }},
	}
	assert.NoError(t, Register(r, h))

	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())
}

func TestRegister_UnknownMethod(t *testing.T) {
	r := gin.New()

	err := Register(r, &Handler{Method: "BREW", Path: "/coffee"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/coffee")
}
