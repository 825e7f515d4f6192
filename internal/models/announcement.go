package models

// AnnouncementCategory is the closed set of board categories.
type AnnouncementCategory string

const (
	AnnouncementGeneral    AnnouncementCategory = "Geral"
	AnnouncementGraduation AnnouncementCategory = "Graduação"
	AnnouncementEvent      AnnouncementCategory = "Evento"
	AnnouncementFinancial  AnnouncementCategory = "Financeiro"
)

// Valid reports whether the category belongs to the closed set.
func (c AnnouncementCategory) Valid() bool {
	switch c {
	case AnnouncementGeneral, AnnouncementGraduation, AnnouncementEvent, AnnouncementFinancial:
		return true
	}
	return false
}

// Announcement is a board post. The collection is kept most-recent-first;
// posting prepends.
type Announcement struct {
	ID       string               `json:"id"`
	Title    string               `json:"title"`
	Content  string               `json:"content"`
	Date     string               `json:"date"`
	Category AnnouncementCategory `json:"category"`
}
