package repository

import (
	"context"
	"fmt"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// cardRow mirrors the cards table.
type cardRow struct {
	Name       string `db:"name"`
	Color      string `db:"color"`
	Age        int    `db:"age"`
	EffectType string `db:"effect_type"`
	Icon0      string `db:"icon0"`
	Icon1      string `db:"icon1"`
	Icon2      string `db:"icon2"`
	Icon3      string `db:"icon3"`
	Text0      string `db:"text0"`
	Text1      string `db:"text1"`
	Text2      string `db:"text2"`
}

type achievementRow struct {
	Name        string `db:"name"`
	Criteria    string `db:"criteria"`
	Alternative string `db:"alternative"`
}

func rowFromCard(c *cards.Card) cardRow {
	rec := cards.ToRecord(c)
	return cardRow{
		Name:       rec.Name,
		Color:      rec.Color,
		Age:        c.Age,
		EffectType: rec.EffectType,
		Icon0:      rec.Icons[0],
		Icon1:      rec.Icons[1],
		Icon2:      rec.Icons[2],
		Icon3:      rec.Icons[3],
		Text0:      rec.Texts[0],
		Text1:      rec.Texts[1],
		Text2:      rec.Texts[2],
	}
}

func (r cardRow) card() (*cards.Card, error) {
	return cards.NewCard(cards.Record{
		Name:       r.Name,
		Color:      r.Color,
		Age:        fmt.Sprint(r.Age),
		EffectType: r.EffectType,
		Icons:      [4]string{r.Icon0, r.Icon1, r.Icon2, r.Icon3},
		Texts:      [3]string{r.Text0, r.Text1, r.Text2},
	})
}

// CardRepository loads and stores the catalog.
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a catalog repository.
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

// LoadCards returns every card ordered by age and name.
func (r *CardRepository) LoadCards(ctx context.Context) ([]*cards.Card, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT name, color, age, effect_type, icon0, icon1, icon2, icon3, text0, text1, text2
		FROM cards
		ORDER BY age, name
	`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[cardRow])
	if err != nil {
		return nil, fmt.Errorf("scan cards: %w", err)
	}

	out := make([]*cards.Card, 0, len(records))
	for _, rec := range records {
		c, err := rec.card()
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", rec.Name, err)
		}
		out = append(out, c)
	}
	r.db.logger.Debug("catalog loaded", zap.Int("cards", len(out)))
	return out, nil
}

// LoadAchievements returns every special achievement ordered by name.
func (r *CardRepository) LoadAchievements(ctx context.Context) ([]*cards.Card, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT name, criteria, alternative FROM special_achievements ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query special achievements: %w", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[achievementRow])
	if err != nil {
		return nil, fmt.Errorf("scan special achievements: %w", err)
	}

	out := make([]*cards.Card, 0, len(records))
	for _, rec := range records {
		c, err := cards.NewAchievement(cards.AchievementRecord{Name: rec.Name, Criteria: rec.Criteria, Alternative: rec.Alternative})
		if err != nil {
			return nil, fmt.Errorf("achievement %q: %w", rec.Name, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// SaveCards upserts cs in one transaction and returns the number written.
func (r *CardRepository) SaveCards(ctx context.Context, cs []*cards.Card) (int, error) {
	batch := &pgx.Batch{}
	for _, c := range cs {
		row := rowFromCard(c)
		batch.Queue(`
			INSERT INTO cards (name, color, age, effect_type, icon0, icon1, icon2, icon3, text0, text1, text2)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (name) DO UPDATE SET
				color = EXCLUDED.color, age = EXCLUDED.age, effect_type = EXCLUDED.effect_type,
				icon0 = EXCLUDED.icon0, icon1 = EXCLUDED.icon1, icon2 = EXCLUDED.icon2, icon3 = EXCLUDED.icon3,
				text0 = EXCLUDED.text0, text1 = EXCLUDED.text1, text2 = EXCLUDED.text2
		`, row.Name, row.Color, row.Age, row.EffectType,
			row.Icon0, row.Icon1, row.Icon2, row.Icon3,
			row.Text0, row.Text1, row.Text2)
	}
	return r.sendBatch(ctx, "cards", batch)
}

// SaveAchievements upserts special achievements in one transaction.
func (r *CardRepository) SaveAchievements(ctx context.Context, cs []*cards.Card) (int, error) {
	batch := &pgx.Batch{}
	for _, c := range cs {
		batch.Queue(`
			INSERT INTO special_achievements (name, criteria, alternative)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET criteria = EXCLUDED.criteria, alternative = EXCLUDED.alternative
		`, c.Name, c.Criteria, c.Alternative)
	}
	return r.sendBatch(ctx, "special_achievements", batch)
}

func (r *CardRepository) sendBatch(ctx context.Context, table string, batch *pgx.Batch) (int, error) {
	if batch.Len() == 0 {
		return 0, nil
	}
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin %s import: %w", table, err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("write %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s import: %w", table, err)
	}
	r.db.logger.Info("catalog rows written", zap.String("table", table), zap.Int("rows", batch.Len()))
	return batch.Len(), nil
}

// CountCards returns the number of stored cards.
func (r *CardRepository) CountCards(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM cards").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

// Truncate removes every stored card and special achievement.
func (r *CardRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.pool.Exec(ctx, "TRUNCATE cards, special_achievements"); err != nil {
		return fmt.Errorf("truncate catalog: %w", err)
	}
	return nil
}
