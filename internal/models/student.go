package models

// BeltRank is the fixed belt progression used by the academy.
type BeltRank string

const (
	BeltWhite       BeltRank = "Branca"
	BeltGreyWhite   BeltRank = "Cinza/Branca"
	BeltGrey        BeltRank = "Cinza"
	BeltGreyBlack   BeltRank = "Cinza/Preta"
	BeltYellowWhite BeltRank = "Amarela/Branca"
	BeltYellow      BeltRank = "Amarela"
	BeltYellowBlack BeltRank = "Amarela/Preta"
	BeltOrangeWhite BeltRank = "Laranja/Branca"
	BeltOrange      BeltRank = "Laranja"
	BeltOrangeBlack BeltRank = "Laranja/Preta"
	BeltGreenWhite  BeltRank = "Verde/Branca"
	BeltGreen       BeltRank = "Verde"
	BeltGreenBlack  BeltRank = "Verde/Preta"
	BeltBlue        BeltRank = "Azul"
	BeltPurple      BeltRank = "Roxa"
	BeltBrown       BeltRank = "Marrom"
	BeltBlack       BeltRank = "Preta"
)

// BeltRanks lists every belt in progression order.
var BeltRanks = []BeltRank{
	BeltWhite, BeltGreyWhite, BeltGrey, BeltGreyBlack,
	BeltYellowWhite, BeltYellow, BeltYellowBlack,
	BeltOrangeWhite, BeltOrange, BeltOrangeBlack,
	BeltGreenWhite, BeltGreen, BeltGreenBlack,
	BeltBlue, BeltPurple, BeltBrown, BeltBlack,
}

// Valid reports whether the rank belongs to the closed belt set.
func (b BeltRank) Valid() bool {
	for _, r := range BeltRanks {
		if b == r {
			return true
		}
	}
	return false
}

// Student represents an enrolled athlete. ProfessorID points at the staff
// member who enrolled the student, or the administrator sentinel; an id that
// resolves to neither is treated as "unassigned" at read time.
type Student struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Belt            BeltRank `json:"belt"`
	Stripes         int      `json:"stripes"`
	JoinDate        string   `json:"joinDate"`
	Active          bool     `json:"active"`
	Phone           string   `json:"phone"`
	LastPaymentDate string   `json:"lastPaymentDate"`
	ProfessorID     string   `json:"professorId,omitempty"`
}
