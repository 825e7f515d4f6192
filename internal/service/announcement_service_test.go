package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
	appErrors "github.com/Dojohubcloud/Ossjiujitsu/pkg/errors"
)

func TestAnnouncementPostPrepends(t *testing.T) {
	doc := emptyDocument("pw")
	doc.Announcements = []models.Announcement{{ID: "old", Title: "Antigo"}}
	store := newMemStore(doc)
	svc := NewAnnouncementService(store, nil, nil)

	post, err := svc.Post(PostAnnouncementRequest{Title: "Treino extra", Content: "Sábado 10h", Category: "Evento"})
	require.NoError(t, err)
	assert.Equal(t, models.AnnouncementEvent, post.Category)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, post.ID, list[0].ID)
}

func TestAnnouncementPostValidation(t *testing.T) {
	svc := NewAnnouncementService(newMemStore(emptyDocument("pw")), nil, nil)

	_, err := svc.Post(PostAnnouncementRequest{Title: "", Content: "x"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = svc.Post(PostAnnouncementRequest{Title: "x", Content: "y", Category: "Inexistente"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestAnnouncementDeleteAbsentIsNoop(t *testing.T) {
	doc := emptyDocument("pw")
	doc.Announcements = []models.Announcement{{ID: "a1", Title: "Aviso"}}
	store := newMemStore(doc)
	svc := NewAnnouncementService(store, nil, nil)

	require.NoError(t, svc.Delete("missing"))
	assert.Len(t, svc.List(), 1)

	require.NoError(t, svc.Delete("a1"))
	assert.Empty(t, svc.List())
}
