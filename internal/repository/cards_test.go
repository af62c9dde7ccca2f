package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/innovation-engine/innovation-go/internal/config"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const oarsRow = "Oars|red|1|castle|castle|crown||castle|I demand you transfer a card with a crown from your hand to my score pile! If you do, draw a 1!|If no cards were transferred due to this demand, draw a 1.|"

func parseOne(t *testing.T, row string) *cards.Card {
	t.Helper()
	cs, err := cards.ParseCatalog(strings.NewReader(row))
	require.NoError(t, err)
	require.Len(t, cs, 1)
	return cs[0]
}

func TestCardRowKeepsBlankSlotsAndTexts(t *testing.T) {
	oars := parseOne(t, oarsRow)
	row := rowFromCard(oars)

	assert.Equal(t, "castle", row.EffectType)
	assert.Equal(t, "", row.Icon2, "blank slot is stored empty")
	assert.Equal(t, "", row.Text2)
	assert.Equal(t, 1, row.Age)

	back, err := row.card()
	require.NoError(t, err)
	assert.Equal(t, oars, back)
}

func TestCardRowRejectsBadColumns(t *testing.T) {
	row := rowFromCard(parseOne(t, oarsRow))
	row.Color = "orange"
	_, err := row.card()
	assert.ErrorIs(t, err, cards.ErrInvalidRecord)
}

// testDB connects to INNOVATION_TEST_DATABASE_URL or skips.
func testDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("INNOVATION_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("INNOVATION_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := NewDB(ctx, config.DatabaseConfig{URL: url, MaxConns: 2, ConnectTimeout: 5 * time.Second}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestCatalogRoundTripThroughPostgres(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewCardRepository(db)
	require.NoError(t, repo.Truncate(ctx))

	f, err := os.Open("../../data/cards.txt")
	require.NoError(t, err)
	defer f.Close()
	catalog, err := cards.ParseCatalog(f)
	require.NoError(t, err)

	n, err := repo.SaveCards(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, len(catalog), n)

	// Saving again updates in place.
	_, err = repo.SaveCards(ctx, catalog)
	require.NoError(t, err)
	count, err := repo.CountCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(catalog)), count)

	loaded, err := repo.LoadCards(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, catalog, loaded)
}

func TestAchievementsThroughPostgres(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewCardRepository(db)
	require.NoError(t, repo.Truncate(ctx))

	specials, err := cards.ParseAchievements(strings.NewReader("Monument|Tuck six cards or score six cards during a single turn.|Masonry\n"))
	require.NoError(t, err)
	_, err = repo.SaveAchievements(ctx, specials)
	require.NoError(t, err)

	loaded, err := repo.LoadAchievements(ctx)
	require.NoError(t, err)
	assert.Equal(t, specials, loaded)
}
