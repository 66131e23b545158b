package links

import "github.com/myth3x/mythex-snapshare/internal/models"

// Requester identifies the caller of a resolve or mutation. The zero
// value is an anonymous requester.
type Requester struct {
	ID   string
	Role models.Role
}

func (r Requester) Anonymous() bool {
	return r.ID == ""
}

func (r Requester) Admin() bool {
	return r.ID != "" && r.Role == models.RoleAdmin
}

// Permits reports whether the requester may resolve the record: public
// records resolve for anyone, private ones only for their owner or an
// admin. Total by construction; a nil record is denied and a malformed
// requester is just anonymous.
func Permits(rec *models.Screenshot, req Requester) bool {
	if rec == nil {
		return false
	}
	if rec.IsPublic {
		return true
	}
	if req.Anonymous() {
		return false
	}
	return req.ID == rec.OwnerID || req.Admin()
}
