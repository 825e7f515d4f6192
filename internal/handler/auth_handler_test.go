package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/service"
)

// fakeStore keeps the document in memory for handler tests.
type fakeStore struct {
	doc models.Document
}

func (f *fakeStore) Snapshot() models.Document {
	return f.doc.Clone()
}

func (f *fakeStore) Apply(mutate func(models.Document) (models.Document, error)) (models.Document, error) {
	next, err := mutate(f.doc.Clone())
	if err != nil {
		return models.Document{}, err
	}
	f.doc = next
	return next.Clone(), nil
}

func testDocument(t *testing.T, masterPassword string) models.Document {
	t.Helper()
	hash, err := document.HashPassword(masterPassword)
	require.NoError(t, err)
	return models.Document{
		Settings: models.Settings{AcademyName: "Academia Teste", AccessPassword: hash},
	}
}

func TestAuthHandlerAdminLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeStore{doc: testDocument(t, "ben150718")}
	handler := NewAuthHandler(service.NewAuthService(store, service.NewSessionManager(), nil))

	body, _ := json.Marshal(map[string]string{"password": "ben150718"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/admin/login", bytes.NewReader(body))

	handler.AdminLogin(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data service.LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, models.RoleAdministrator, envelope.Data.Session.Role)
}

func TestAuthHandlerAdminLoginWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeStore{doc: testDocument(t, "ben150718")}
	handler := NewAuthHandler(service.NewAuthService(store, service.NewSessionManager(), nil))

	body, _ := json.Marshal(map[string]string{"password": "errado"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/admin/login", bytes.NewReader(body))

	handler.AdminLogin(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
}

func TestAuthHandlerStaffLoginLocked(t *testing.T) {
	gin.SetMode(gin.TestMode)
	doc := testDocument(t, "ben150718")
	hash, err := document.HashPassword("x")
	require.NoError(t, err)
	doc.Staff = []models.StaffMember{{ID: "st1", Name: "Ana", Password: hash, Active: false}}
	handler := NewAuthHandler(service.NewAuthService(&fakeStore{doc: doc}, service.NewSessionManager(), nil))

	body, _ := json.Marshal(map[string]string{"name": "Ana", "password": "x"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/staff/login", bytes.NewReader(body))

	handler.StaffLogin(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "ACCOUNT_LOCKED", envelope.Error.Code)
}
