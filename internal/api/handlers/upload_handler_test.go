package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoang-11jjk/RealEstatePro/internal/api/handlers"
	"github.com/hoang-11jjk/RealEstatePro/internal/storage"
)

func setupUploadRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	assetStorage, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	handler := handlers.NewUploadHandler(assetStorage)
	r := gin.New()
	r.POST("/api/upload", handler.Upload)
	return r, dir
}

func TestUploadHandler_Success(t *testing.T) {
	r, dir := setupUploadRouter(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "house.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var respBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	url := respBody["url"]
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "_house.jpg"))

	// The asset actually landed in the upload directory.
	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	assert.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(saved))
}

func TestUploadHandler_MissingFile(t *testing.T) {
	r, _ := setupUploadRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/upload", strings.NewReader(""))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
