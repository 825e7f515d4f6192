package document

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dojohubcloud/Ossjiujitsu/internal/models"
)

// HashPassword derives the stored form of a credential.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext candidate against the stored hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// isHashed recognises the bcrypt marker on a stored credential.
func isHashed(credential string) bool {
	return strings.HasPrefix(credential, "$2")
}

// NormalizeCredentials hashes any plaintext credential left in a document.
// Backups made by the legacy app stored the master password and staff
// passwords raw; documents written by this system are already hashed and
// pass through untouched. Returns the (possibly new) document and whether
// anything was migrated.
func NormalizeCredentials(doc models.Document) (models.Document, bool, error) {
	changed := false
	next := doc

	if doc.Settings.AccessPassword != "" && !isHashed(doc.Settings.AccessPassword) {
		hash, err := HashPassword(doc.Settings.AccessPassword)
		if err != nil {
			return doc, false, err
		}
		if !changed {
			next = doc.Clone()
		}
		next.Settings.AccessPassword = hash
		changed = true
	}

	for i, m := range doc.Staff {
		if m.Password == "" || isHashed(m.Password) {
			continue
		}
		hash, err := HashPassword(m.Password)
		if err != nil {
			return doc, false, err
		}
		if !changed {
			next = doc.Clone()
		}
		next.Staff[i].Password = hash
		changed = true
	}

	return next, changed, nil
}
