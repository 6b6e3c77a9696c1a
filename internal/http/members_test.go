package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaldes/biblioteca/internal/entities"
)

func setupMembersRouter(t *testing.T) (*gin.Engine, *MembersController) {
	t.Helper()
	_, repos := setupTestRepos(t)

	controller := NewMembersController(repos.Members)
	router := gin.New()
	router.GET("/api/members", controller.List)
	router.GET("/api/members/:id", controller.Get)
	router.POST("/api/members", controller.Create)
	router.PUT("/api/members/:id", controller.Update)
	router.DELETE("/api/members/:id", controller.Delete)
	router.POST("/api/members/create", controller.CreateMember)
	return router, controller
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestMembersController_CreateMember(t *testing.T) {
	t.Run("empty payload is rejected", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members/create", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Nombre y email son requeridos", resp.Error)
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members/create", `{"full_name": "Ana Torres"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed email is rejected with field errors", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members/create", `{"full_name": "Ana Torres", "email": "not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Email inválido", resp.Details["email"])
	})

	t.Run("store failure surfaces as a client error", func(t *testing.T) {
		db, repos := setupTestRepos(t)
		controller := NewMembersController(repos.Members)
		router := gin.New()
		router.POST("/api/members/create", controller.CreateMember)

		require.NoError(t, db.DB.Exec("DROP TABLE members").Error)

		w := postJSON(router, "/api/members/create", `{"full_name": "Ana Torres", "email": "ana@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("valid payload returns ok and the new id", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members/create", `{"full_name": "Ana Torres", "email": "ana@example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OK bool   `json:"ok"`
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.NotEmpty(t, resp.ID)
	})
}

func TestMembersController_CRUD(t *testing.T) {
	t.Run("list starts empty", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/members", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("create returns the saved record", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members", `{"full_name": "Luis Vidal", "email": "luis@example.com", "phone": "555-0101"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var member entities.Member
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &member))
		assert.NotEmpty(t, member.ID)
		assert.Equal(t, "Luis Vidal", member.FullName)
		assert.True(t, member.Active)
	})

	t.Run("update applies the full form", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members", `{"full_name": "Luis Vidal", "email": "luis@example.com"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var member entities.Member
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &member))

		w = httptest.NewRecorder()
		body := bytes.NewBufferString(`{"full_name": "Luis A. Vidal", "email": "luis@example.com", "active": false}`)
		req, _ := http.NewRequest("PUT", "/api/members/"+member.ID, body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var updated entities.Member
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "Luis A. Vidal", updated.FullName)
		assert.False(t, updated.Active)
	})

	t.Run("update of a missing id is a 404", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := httptest.NewRecorder()
		body := bytes.NewBufferString(`{"full_name": "Nadie", "email": "nadie@example.com"}`)
		req, _ := http.NewRequest("PUT", "/api/members/no-such-id", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete requires explicit confirmation", func(t *testing.T) {
		router, _ := setupMembersRouter(t)

		w := postJSON(router, "/api/members", `{"full_name": "Eva Ruiz", "email": "eva@example.com"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		var member entities.Member
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &member))

		w = httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/members/"+member.ID, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Still there
		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/members/"+member.ID, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("DELETE", "/api/members/"+member.ID+"?confirm=true", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/members/"+member.ID, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
