package manifest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a 24-digit uppercase hex object identifier.
func NewID() string {
	u := uuid.New()
	return strings.ToUpper(fmt.Sprintf("%x", u[:12]))
}

func (p *Project) idInUse(id string) bool {
	for _, f := range p.Files {
		if f.ID == id {
			return true
		}
	}
	for _, t := range p.Targets {
		for _, ph := range t.Phases {
			if ph.ID == id {
				return true
			}
		}
	}
	return false
}

// newID returns an identifier not used anywhere in p.
func (p *Project) newID() string {
	for {
		if id := NewID(); !p.idInUse(id) {
			return id
		}
	}
}
