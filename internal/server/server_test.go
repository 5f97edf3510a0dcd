package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verilens/verilens/internal/auth"
	"github.com/verilens/verilens/internal/config"
)

func TestNewShareID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newShareID()
		assert.Len(t, id, 12)
		assert.NotContains(t, id, "-")
		assert.False(t, seen[id], "share IDs must not repeat")
		seen[id] = true
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := &Server{tokens: auth.NewTokenIssuer("test-secret"), log: zap.NewNop()}
	r := gin.New()
	r.GET("/protected", s.requireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": currentUserID(c)})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := s.tokens.Issue("user-42")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-42")
	})
}

func TestFetchRemote(t *testing.T) {
	payload := []byte("fake image bytes")
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.png") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(payload)
	}))
	defer upstream.Close()

	s := &Server{
		cfg:     &config.Config{MaxUploadBytes: 1024},
		fetcher: upstream.Client(),
		log:     zap.NewNop(),
	}

	t.Run("filename from path", func(t *testing.T) {
		name, data, err := s.fetchRemote(context.Background(), upstream.URL+"/media/portrait.png")
		require.NoError(t, err)
		assert.Equal(t, "portrait.png", name)
		assert.Equal(t, payload, data)
	})

	t.Run("bare host gets placeholder name", func(t *testing.T) {
		name, _, err := s.fetchRemote(context.Background(), upstream.URL)
		require.NoError(t, err)
		assert.Equal(t, "download", name)
	})

	t.Run("upstream error", func(t *testing.T) {
		_, _, err := s.fetchRemote(context.Background(), upstream.URL+"/media/missing.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("size limit enforced", func(t *testing.T) {
		s.cfg.MaxUploadBytes = 4
		defer func() { s.cfg.MaxUploadBytes = 1024 }()

		_, _, err := s.fetchRemote(context.Background(), upstream.URL+"/media/portrait.png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size limit")
	})
}
