package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits (~1 trillion) of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NodeIDs supplies candidate node IDs ("nav-xxxxxxxx"). Collision checking
// is the forest's job; this source just produces candidates. It satisfies
// nav.IDSource.
type NodeIDs struct {
	counter int
}

func (g *NodeIDs) NextID() string {
	id, err := newRandomID("nav")
	if err != nil {
		// crypto/rand failing is effectively fatal elsewhere; degrade to a
		// process-local counter rather than handing out an empty ID.
		g.counter++
		return fmt.Sprintf("nav-%d", g.counter)
	}
	return id
}

func (s Store) nextCardID(reg *Registry) string {
	for i := 0; i < 50; i++ {
		id, err := newRandomID("card")
		if err != nil {
			break
		}
		if _, exists := reg.FindCard(id); !exists {
			return id
		}
	}
	return fmt.Sprintf("card-%d", len(reg.Cards)+1)
}
