package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

func TestSettingsGetNeverExposesPassword(t *testing.T) {
	svc := NewSettingsService(newMemStore(emptyDocument("segredo")), nil, nil)
	view := svc.Get()
	assert.Equal(t, "Academia Teste", view.AcademyName)
}

func TestSettingsUpdateHashesNewPassword(t *testing.T) {
	store := newMemStore(emptyDocument("antiga"))
	svc := NewSettingsService(store, nil, nil)

	view, err := svc.Update(UpdateSettingsRequest{AcademyName: "Nova Academia", AccessPassword: "nova"})
	require.NoError(t, err)
	assert.Equal(t, "Nova Academia", view.AcademyName)

	settings := store.Snapshot().Settings
	assert.NotEqual(t, "nova", settings.AccessPassword)
	assert.True(t, document.VerifyPassword(settings.AccessPassword, "nova"))
	assert.False(t, document.VerifyPassword(settings.AccessPassword, "antiga"))
}

func TestSettingsUpdateRejectsEmptyFields(t *testing.T) {
	svc := NewSettingsService(newMemStore(emptyDocument("pw")), nil, nil)

	_, err := svc.Update(UpdateSettingsRequest{AcademyName: "", AccessPassword: "x"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = svc.Update(UpdateSettingsRequest{AcademyName: "Academia", AccessPassword: ""})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
