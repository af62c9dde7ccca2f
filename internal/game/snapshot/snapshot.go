// Package snapshot captures structurally comparable views of pile contents.
//
// A Snapshot maps every pile name to the ordered list of card identifiers it
// held at capture time. Two snapshots are equal iff they name the same piles
// and every pile's list is identical. Snapshots are never mutated after capture.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// PileSource is anything whose contents can be captured.
type PileSource interface {
	PileName() string
	CardIDs() []string
}

// Tagged is implemented by piles that carry state beyond their card order.
// A board stack reports its splay direction. Tags are covered by Checksum only;
// Equal and Diff compare card lists.
type Tagged interface {
	PileTag() string
}

// DuplicateCardError reports a card found in more than one pile. It indicates an
// ownership bug in the move logic and is raised as a panic value.
type DuplicateCardError struct {
	CardID string
	First  string
	Second string
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("card %q found in both %q and %q", e.CardID, e.First, e.Second)
}

// Snapshot is an immutable pile name -> card IDs view.
type Snapshot struct {
	order []string
	piles map[string][]string
	tags  map[string]string
}

// Capture records the contents of the given piles. It panics with a
// *DuplicateCardError when a card appears in two piles, and on duplicate pile names.
func Capture(sources ...PileSource) Snapshot {
	s := Snapshot{
		order: make([]string, 0, len(sources)),
		piles: make(map[string][]string, len(sources)),
		tags:  make(map[string]string),
	}
	location := make(map[string]string)

	for _, src := range sources {
		name := src.PileName()
		if _, exists := s.piles[name]; exists {
			panic(fmt.Sprintf("snapshot: pile %q captured twice", name))
		}
		ids := src.CardIDs()
		for _, id := range ids {
			if prev, seen := location[id]; seen {
				panic(&DuplicateCardError{CardID: id, First: prev, Second: name})
			}
			location[id] = name
		}
		s.order = append(s.order, name)
		s.piles[name] = append([]string(nil), ids...)
		if tagged, ok := src.(Tagged); ok {
			if tag := tagged.PileTag(); tag != "" {
				s.tags[name] = tag
			}
		}
	}
	return s
}

// Piles returns the pile names in capture order.
func (s Snapshot) Piles() []string {
	return append([]string(nil), s.order...)
}

// Cards returns a copy of a pile's card IDs, top first.
func (s Snapshot) Cards(pile string) []string {
	return append([]string(nil), s.piles[pile]...)
}

// Tag returns the tag recorded for a pile, or "" when it has none.
func (s Snapshot) Tag(pile string) string {
	return s.tags[pile]
}

// Len returns the number of cards in a pile.
func (s Snapshot) Len(pile string) int {
	return len(s.piles[pile])
}

// Locate returns the pile holding a card.
func (s Snapshot) Locate(cardID string) (string, bool) {
	for _, name := range s.order {
		for _, id := range s.piles[name] {
			if id == cardID {
				return name, true
			}
		}
	}
	return "", false
}

// Equal reports whether both snapshots name the same piles with identical card lists.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.piles) != len(other.piles) {
		return false
	}
	for name, ids := range s.piles {
		otherIDs, ok := other.piles[name]
		if !ok || len(ids) != len(otherIDs) {
			return false
		}
		for i := range ids {
			if ids[i] != otherIDs[i] {
				return false
			}
		}
	}
	return true
}

// Diff returns the names of piles whose card lists differ, sorted.
func (s Snapshot) Diff(other Snapshot) []string {
	names := make(map[string]struct{})
	for name := range s.piles {
		names[name] = struct{}{}
	}
	for name := range other.piles {
		names[name] = struct{}{}
	}

	var changed []string
	for name := range names {
		a, okA := s.piles[name]
		b, okB := other.piles[name]
		if okA != okB || strings.Join(a, "\x00") != strings.Join(b, "\x00") {
			changed = append(changed, name)
		}
	}
	sort.Strings(changed)
	return changed
}

// Checksum returns a SHA-256 over a canonical form that ignores capture order.
// Unlike Equal it includes pile tags.
func (s Snapshot) Checksum() string {
	names := make([]string, 0, len(s.piles))
	for name := range s.piles {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	for _, name := range names {
		// Card order within a pile matters, so it is kept.
		buf.WriteString(fmt.Sprintf("PILE:%s|%s|%s\n", name, s.tags[name], strings.Join(s.piles[name], ",")))
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// wireSnapshot is the gob form of a Snapshot.
type wireSnapshot struct {
	Order []string
	Piles map[string][]string
	Tags  map[string]string
}

// GobEncode implements gob.GobEncoder.
func (s Snapshot) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(wireSnapshot{Order: s.order, Piles: s.piles, Tags: s.tags})
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder.
func (s *Snapshot) GobDecode(data []byte) error {
	var w wireSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	s.order = w.Order
	s.piles = w.Piles
	s.tags = w.Tags
	if s.piles == nil {
		s.piles = make(map[string][]string, len(s.order))
	}
	for _, name := range s.order {
		if _, ok := s.piles[name]; !ok {
			s.piles[name] = nil
		}
	}
	if s.tags == nil {
		s.tags = make(map[string]string)
	}
	return nil
}
