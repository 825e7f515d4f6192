package service

import (
	"github.com/Dojohubcloud/Ossjiujitsu/internal/document"
	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
)

// memStore is an in-memory document store for service tests. It mirrors the
// real store's Apply contract without touching disk.
type memStore struct {
	doc models.Document
}

func newMemStore(doc models.Document) *memStore {
	return &memStore{doc: doc}
}

func (m *memStore) Snapshot() models.Document {
	return m.doc.Clone()
}

func (m *memStore) Apply(mutate func(models.Document) (models.Document, error)) (models.Document, error) {
	next, err := mutate(m.doc.Clone())
	if err != nil {
		return models.Document{}, err
	}
	m.doc = next
	return next.Clone(), nil
}

func (m *memStore) Replace(doc models.Document) error {
	m.doc = doc
	return nil
}

func emptyDocument(masterPassword string) models.Document {
	hash, err := document.HashPassword(masterPassword)
	if err != nil {
		panic(err)
	}
	return models.Document{
		Students:      []models.Student{},
		Staff:         []models.StaffMember{},
		Attendance:    []models.AttendanceRecord{},
		Payments:      []models.PaymentRecord{},
		Announcements: []models.Announcement{},
		Settings:      models.Settings{AcademyName: "Academia Teste", AccessPassword: hash},
	}
}

func adminTestSession() models.Session {
	return models.Session{Role: models.RoleAdministrator, Name: models.AdministratorName, ID: models.AdministratorID}
}

func staffTestSession(id, name string) models.Session {
	return models.Session{Role: models.RoleStaff, Name: name, ID: id}
}
