package links

import (
	"testing"

	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPermits(t *testing.T) {
	public := &models.Screenshot{ID: "p1", OwnerID: "alice", IsPublic: true}
	private := &models.Screenshot{ID: "p2", OwnerID: "alice", IsPublic: false}

	tests := []struct {
		name string
		rec  *models.Screenshot
		req  Requester
		want bool
	}{
		{"public anonymous", public, Requester{}, true},
		{"public stranger", public, Requester{ID: "bob"}, true},
		{"public owner", public, Requester{ID: "alice"}, true},
		{"private anonymous", private, Requester{}, false},
		{"private stranger", private, Requester{ID: "bob"}, false},
		{"private owner", private, Requester{ID: "alice"}, true},
		{"private admin", private, Requester{ID: "root", Role: models.RoleAdmin}, true},
		{"nil record", nil, Requester{ID: "alice"}, false},
		{"admin role without id is anonymous", private, Requester{Role: models.RoleAdmin}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Permits(tt.rec, tt.req))
		})
	}
}
