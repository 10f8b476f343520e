package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the authenticated caller as seen by handlers. Handlers read
// it instead of poking gin context keys, so the claim layout stays private
// to this package.
type Identity interface {
	UserID() uuid.UUID
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
}

type identity struct {
	userID uuid.UUID
	roles  []string
	valid  bool
}

func (i identity) UserID() uuid.UUID { return i.userID }
func (i identity) Roles() []string   { return i.roles }

func (i identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i identity) IsAuthenticated() bool { return i.valid }

// GetIdentity reads the caller identity that AuthRequired stored on the
// context. Requests that skipped the middleware yield an unauthenticated
// identity, never nil.
func GetIdentity(c *gin.Context) Identity {
	userID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return identity{}
	}
	uid, ok := userID.(uuid.UUID)
	if !ok {
		return identity{}
	}

	var roles []string
	if stored, ok := c.Get(ContextRolesKey); ok {
		roles, _ = stored.([]string)
	}

	return identity{userID: uid, roles: roles, valid: true}
}

// MustGetIdentity is GetIdentity for handlers that cannot proceed without a
// caller: on an unauthenticated request it aborts with 401 and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
