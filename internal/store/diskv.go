package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"navcard-cli/internal/model"
)

// Node records and order sequences live in a diskv tree under <dir>/data,
// keyed "cards/<cardID>/nodes/<nodeID>" and "cards/<cardID>/order". The
// slash-separated key maps straight onto the on-disk layout.

func (s Store) openDiskv() *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:          s.dataDir(),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}

func nodeKey(cardID, nodeID string) string {
	return fmt.Sprintf("cards/%s/nodes/%s", cardID, nodeID)
}

func nodeKeyPrefix(cardID string) string {
	return fmt.Sprintf("cards/%s/nodes/", cardID)
}

func orderKey(cardID string) string {
	return fmt.Sprintf("cards/%s/order", cardID)
}

// CardRecords returns the durable node store for one card. It satisfies
// nav.Records.
func (s Store) CardRecords(cardID string) *CardRecords {
	return &CardRecords{d: s.openDiskv(), cardID: strings.TrimSpace(cardID)}
}

type CardRecords struct {
	d      *diskv.Diskv
	cardID string
}

func (r *CardRecords) Get(id string) (model.Node, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Node{}, false
	}
	b, err := r.d.Read(nodeKey(r.cardID, id))
	if err != nil {
		return model.Node{}, false
	}
	var n model.Node
	if err := json.Unmarshal(b, &n); err != nil {
		return model.Node{}, false
	}
	if strings.TrimSpace(n.ID) == "" {
		n.ID = id
	}
	return n, true
}

func (r *CardRecords) Set(n model.Node) error {
	id := strings.TrimSpace(n.ID)
	if id == "" {
		return errors.New("store: node id is empty")
	}
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return r.d.Write(nodeKey(r.cardID, id), b)
}

func (r *CardRecords) Delete(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	err := r.d.Erase(nodeKey(r.cardID, id))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Keys lists every stored node ID for the card, including records no
// sequence references. Doctor uses this to find orphans.
func (r *CardRecords) Keys() []string {
	prefix := nodeKeyPrefix(r.cardID)
	var out []string
	for key := range r.d.KeysPrefix(prefix, nil) {
		out = append(out, strings.TrimPrefix(key, prefix))
	}
	return out
}

// CardSequence returns the durable order sequence for one card. It
// satisfies nav.Sequence.
func (s Store) CardSequence(cardID string) *CardSequence {
	return &CardSequence{d: s.openDiskv(), cardID: strings.TrimSpace(cardID)}
}

type CardSequence struct {
	d      *diskv.Diskv
	cardID string
}

func (q *CardSequence) Get() ([]string, error) {
	b, err := q.d.Read(orderKey(q.cardID))
	if err != nil {
		// A card with no writes yet has no order document.
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("store: order for card %s: %w", q.cardID, err)
	}
	return ids, nil
}

func (q *CardSequence) Replace(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return q.d.Write(orderKey(q.cardID), b)
}

// DropCardData erases a card's order document and every node record. Used
// when the card itself is deleted.
func (s Store) DropCardData(cardID string) error {
	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return nil
	}
	d := s.openDiskv()
	if err := d.Erase(orderKey(cardID)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	prefix := nodeKeyPrefix(cardID)
	for key := range d.KeysPrefix(prefix, nil) {
		if err := d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
