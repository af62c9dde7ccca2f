package cards

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidRecord is matched by every catalog parse failure.
var ErrInvalidRecord = errors.New("invalid catalog record")

// RecordError reports a malformed catalog row.
type RecordError struct {
	Line  int
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("catalog line %d: field %s: %v", e.Line, e.Field, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Err}
}

// Record is a raw card row as stored in a catalog file or database.
type Record struct {
	Name       string
	Color      string
	Age        string
	EffectType string
	Icons      [4]string
	Texts      [3]string
}

// AchievementRecord is the reduced row used by special achievements.
type AchievementRecord struct {
	Name        string
	Criteria    string
	Alternative string
}

const (
	cardFields        = 11
	achievementFields = 3
)

// NewCard validates a record and builds the card it describes.
func NewCard(rec Record) (*Card, error) {
	return newCard(rec, 0)
}

func newCard(rec Record, line int) (*Card, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, &RecordError{Line: line, Field: "name", Err: errors.New("name is required")}
	}

	color, err := ParseColor(rec.Color)
	if err != nil {
		return nil, &RecordError{Line: line, Field: "color", Err: err}
	}

	age, err := strconv.Atoi(strings.TrimSpace(rec.Age))
	if err != nil || age < MinAge || age > MaxAge {
		return nil, &RecordError{Line: line, Field: "age", Err: fmt.Errorf("age must be a number between %d and %d, got %q", MinAge, MaxAge, rec.Age)}
	}

	effectType, err := ParseIcon(rec.EffectType)
	if err != nil {
		return nil, &RecordError{Line: line, Field: "effect_type", Err: err}
	}
	if effectType == IconBlank {
		effectType = IconNone
	}

	card := &Card{
		ID:         CardID(name),
		Name:       name,
		Color:      color,
		Age:        age,
		EffectType: effectType,
	}
	for i, token := range rec.Icons {
		icon, err := ParseIcon(token)
		if err != nil {
			return nil, &RecordError{Line: line, Field: fmt.Sprintf("icon_%d", i), Err: err}
		}
		card.Icons[i] = icon
	}
	for _, text := range rec.Texts {
		if text = strings.TrimSpace(text); text != "" {
			card.Texts = append(card.Texts, text)
		}
	}
	if len(card.Texts) > 0 && card.EffectType == IconNone {
		return nil, &RecordError{Line: line, Field: "effect_type", Err: errors.New("cards with effects need an effect type")}
	}
	return card, nil
}

// NewAchievement builds a special achievement marker card.
func NewAchievement(rec AchievementRecord) (*Card, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, &RecordError{Field: "name", Err: errors.New("name is required")}
	}
	return &Card{
		ID:          CardID(name),
		Name:        name,
		Color:       ColorNone,
		EffectType:  IconNone,
		Icons:       [4]Icon{IconBlank, IconBlank, IconBlank, IconBlank},
		Criteria:    strings.TrimSpace(rec.Criteria),
		Alternative: strings.TrimSpace(rec.Alternative),
	}, nil
}

// ParseCatalog reads pipe-delimited card rows. Blank lines and lines starting
// with '#' are skipped. The first malformed row aborts the load.
func ParseCatalog(r io.Reader) ([]*Card, error) {
	var out []*Card
	seen := make(map[CardID]int)
	err := eachRow(r, cardFields, func(line int, fields []string) error {
		rec := Record{
			Name:       fields[0],
			Color:      fields[1],
			Age:        fields[2],
			EffectType: fields[3],
			Icons:      [4]string{fields[4], fields[5], fields[6], fields[7]},
			Texts:      [3]string{fields[8], fields[9], fields[10]},
		}
		card, err := newCard(rec, line)
		if err != nil {
			return err
		}
		if prev, dup := seen[card.ID]; dup {
			return &RecordError{Line: line, Field: "name", Err: fmt.Errorf("duplicate card %q (first on line %d)", card.Name, prev)}
		}
		seen[card.ID] = line
		out = append(out, card)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ParseAchievements reads pipe-delimited special achievement rows.
func ParseAchievements(r io.Reader) ([]*Card, error) {
	var out []*Card
	err := eachRow(r, achievementFields, func(line int, fields []string) error {
		card, err := NewAchievement(AchievementRecord{Name: fields[0], Criteria: fields[1], Alternative: fields[2]})
		if err != nil {
			var recErr *RecordError
			if errors.As(err, &recErr) {
				recErr.Line = line
			}
			return err
		}
		out = append(out, card)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func eachRow(r io.Reader, width int, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(strings.TrimSpace(text), "#") {
			continue
		}
		fields := strings.Split(text, "|")
		if len(fields) != width {
			return &RecordError{Line: line, Field: "row", Err: fmt.Errorf("expected %d fields, got %d", width, len(fields))}
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	return nil
}

// ByAge groups cards into age buckets, each sorted by name.
func ByAge(catalog []*Card) map[int][]*Card {
	out := make(map[int][]*Card)
	for _, card := range catalog {
		out[card.Age] = append(out[card.Age], card)
	}
	for _, bucket := range out {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Name < bucket[j].Name })
	}
	return out
}

// ToRecord converts a card back into its raw row form.
func ToRecord(card *Card) Record {
	rec := Record{
		Name:  card.Name,
		Color: card.Color.String(),
		Age:   strconv.Itoa(card.Age),
	}
	if card.EffectType != IconNone {
		rec.EffectType = iconNames[card.EffectType]
	}
	for i, icon := range card.Icons {
		rec.Icons[i] = iconNames[icon]
	}
	for i := 0; i < len(card.Texts) && i < len(rec.Texts); i++ {
		rec.Texts[i] = card.Texts[i]
	}
	return rec
}
