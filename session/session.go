package session

import (
	"encoding/gob"

	"github.com/knirb/bikeshop-api/models"
)

func init() {
	// The cookie store serializes session values with gob.
	gob.Register(models.Cart{})
}

// Session is the slice of the session store the storefront workflows need.
// gin-contrib/sessions.Session satisfies it; tests use a map-backed fake.
type Session interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Save() error
}
