package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

func testDefaults() Defaults {
	return Defaults{AcademyName: "Academia Teste", MasterPassword: "segredo"}
}

func TestOpenCreatesDefaultDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "academy.json")

	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	doc := s.Snapshot()
	assert.Equal(t, "Academia Teste", doc.Settings.AcademyName)
	assert.True(t, document.VerifyPassword(doc.Settings.AccessPassword, "segredo"))
	assert.Empty(t, doc.Students)

	// the default document is persisted immediately
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk models.Document
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, "Academia Teste", onDisk.Settings.AcademyName)
}

func TestApplyPersistsAndSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.json")

	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	_, err = s.Apply(func(doc models.Document) (models.Document, error) {
		next, _, err := document.EnrollStudent(doc, document.EnrollInput{Name: "Ana"}, models.AdministratorID, 150, "2026-09-01")
		return next, err
	})
	require.NoError(t, err)

	reopened, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)
	doc := reopened.Snapshot()
	require.Len(t, doc.Students, 1)
	assert.Equal(t, "Ana", doc.Students[0].Name)
	require.Len(t, doc.Payments, 1)
	assert.Equal(t, models.PaymentPending, doc.Payments[0].Status)
}

func TestApplyMutationErrorLeavesDocumentUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.json")

	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	_, err = s.Apply(func(doc models.Document) (models.Document, error) {
		return document.RemoveStudent(doc, "missing")
	})
	require.Error(t, err)
	assert.Empty(t, s.Snapshot().Students)
}

func TestApplyPersistFailureNotCommitted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "academy.json")

	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	// block the atomic rename: a non-empty directory at the target path
	// cannot be replaced
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "blocker"), []byte("x"), 0o644))

	_, err = s.Apply(func(doc models.Document) (models.Document, error) {
		next, _, err := document.EnrollStudent(doc, document.EnrollInput{Name: "Ana"}, models.AdministratorID, 150, "2026-09-01")
		return next, err
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrStorageUnavailable))

	// the failed mutation is not committed
	assert.Empty(t, s.Snapshot().Students)
	assert.Empty(t, s.Snapshot().Payments)
}

func TestOpenMalformedFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "academy.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Academia Teste", s.Snapshot().Settings.AcademyName)

	// the unreadable original is preserved next to the file
	preserved, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(preserved))
}

func TestOpenMigratesPlaintextCredentials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "academy.json")
	legacy := models.Document{
		Staff:    []models.StaffMember{{ID: "st1", Name: "Rafael", Password: "oss123", Active: true}},
		Settings: models.Settings{AcademyName: "Legada", AccessPassword: "ben150718"},
	}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	doc := s.Snapshot()
	assert.Equal(t, "Legada", doc.Settings.AcademyName)
	assert.True(t, document.VerifyPassword(doc.Settings.AccessPassword, "ben150718"))
	assert.True(t, document.VerifyPassword(doc.Staff[0].Password, "oss123"))
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.json")
	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	_, err = s.Apply(func(doc models.Document) (models.Document, error) {
		next, _, err := document.EnrollStudent(doc, document.EnrollInput{Name: "Ana"}, models.AdministratorID, 150, "2026-09-01")
		return next, err
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Students[0].Name = "Mutated"
	assert.Equal(t, "Ana", s.Snapshot().Students[0].Name)
}

func TestReplaceSwapsWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.json")
	s, err := Open(path, testDefaults(), zap.NewNop())
	require.NoError(t, err)

	restored := models.Document{
		Students: []models.Student{{ID: "s1", Name: "Importada"}},
		Settings: models.Settings{AcademyName: "Restaurada", AccessPassword: "$2a$10$hash"},
	}
	require.NoError(t, s.Replace(restored))

	doc := s.Snapshot()
	assert.Equal(t, "Restaurada", doc.Settings.AcademyName)
	require.Len(t, doc.Students, 1)
	assert.Equal(t, "Importada", doc.Students[0].Name)
}
