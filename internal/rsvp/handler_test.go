package rsvp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(f.svc, f.views)

	r := gin.New()
	r.POST("/api/v1/rsvp", h.Submit)
	r.GET("/api/v1/registration", h.Registration)
	r.GET("/api/v1/overview", h.Overview)
	r.GET("/api/v1/confirmation", h.Confirmation)
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	return do(r, method, path, body, nil)
}

func doJSONWithHeader(r http.Handler, path string, body interface{}, name, value string) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, path, body, map[string]string{name: value})
}

func do(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_SubmitCreated(t *testing.T) {
	f := newFixture(t)
	salads := f.category(t, "Salate", 3, 1)
	r := newRouter(f)

	w := doJSON(r, http.MethodPost, "/api/v1/rsvp", map[string]interface{}{
		"guest_name":      "Anna",
		"contact":         "anna@example.ch",
		"coming":          true,
		"attendees_count": 2,
		"items":           []map[string]interface{}{{"category_id": salads.ID, "item_title": "Couscous"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res SubmitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.ItemCount)
	assert.Equal(t, "Herzlichen Dank!", res.Message.Title)

	w = doJSON(r, http.MethodGet, "/api/v1/registration", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view RegistrationView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Categories, 1)
	assert.Equal(t, []string{"Anna: Couscous"}, view.Categories[0].Preview)
}

func TestHandler_SubmitValidationError(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	w := doJSON(r, http.MethodPost, "/api/v1/rsvp", map[string]interface{}{
		"guest_name":      "",
		"contact":         "x",
		"coming":          true,
		"attendees_count": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "guest_name", body["field"])
}

func TestHandler_SubmitRequiresComingFlag(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	w := doJSON(r, http.MethodPost, "/api/v1/rsvp", map[string]interface{}{"guest_name": "A", "contact": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Confirmation(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	w := doJSON(r, http.MethodGet, "/api/v1/confirmation?coming=false", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var c Confirmation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.False(t, c.Coming)
	assert.Equal(t, "Schade, dass du nicht kommen kannst", c.Title)
}

func TestHandler_OverviewEmpty(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f)

	w := doJSON(r, http.MethodGet, "/api/v1/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ov OverviewView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ov))
	assert.Equal(t, 0, ov.AttendeeTotal)
	assert.Empty(t, ov.Categories)
}
