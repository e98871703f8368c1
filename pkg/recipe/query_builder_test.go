package recipe

import (
	"strings"
	"testing"

	"wejv/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSQLBindsEveryValue(t *testing.T) {
	q := newCardQuery("sqlite", domain.ListRecipesRequest{
		Filters: map[domain.FilterCategory][]uint{
			domain.CategoryTag:    {},
			domain.CategoryGenre:  {11, 12, 11},
			domain.CategoryAuthor: {13},
		},
		FavoriteOf: 7,
		Search:     "50%_off",
		Start:      48,
		Count:      24,
		Sort:       domain.SortNameAsc,
	})

	sql, args := q.listSQL()

	pattern := `%50\%\_off%`
	assert.Equal(t, []any{
		uint(11), uint(12), uint(13), // match_count
		uint(7),                      // favorite join
		uint(11), uint(12), uint(13), // inclusion
		pattern, pattern, pattern,
		24, 48,
	}, args)
	assert.Equal(t, len(args), strings.Count(sql, "?"))

	for _, literal := range []string{"11", "12", "13", "50", "off"} {
		assert.NotContains(t, sql, literal)
	}
	assert.Contains(t, sql, "GROUP_CONCAT(DISTINCT g.name)")
	assert.Contains(t, sql, "AS is_favorite")
	assert.Contains(t, sql, `m.name LIKE ? ESCAPE '\'`)
	assert.NotContains(t, sql, "ILIKE")
	assert.Contains(t, sql, "ORDER BY match_count DESC, m.name ASC, m.id DESC")
	assert.NotContains(t, sql, "menu_tags xt", "empty categories are dropped")
}

func TestCountSQLSharesFilterArgs(t *testing.T) {
	q := newCardQuery("postgres", domain.ListRecipesRequest{
		Filters: map[domain.FilterCategory][]uint{
			domain.CategoryPrepareTimeGroup: {2},
			domain.CategoryTag:              {4, 5},
		},
		Search: "Prei",
		Count:  10,
	})

	sql, args := q.countSQL()

	assert.True(t, strings.HasPrefix(strings.TrimSpace(sql), "SELECT COUNT(DISTINCT m.id)"))
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []any{uint(4), uint(5), uint(2), "%Prei%", "%Prei%", "%Prei%"}, args)
	assert.Equal(t, len(args), strings.Count(sql, "?"))

	assert.Contains(t, sql, `m.name ILIKE ? ESCAPE '\'`)
}

func TestPostgresAggregates(t *testing.T) {
	q := newCardQuery("postgres", domain.ListRecipesRequest{Count: 24})

	listSQL, _ := q.listSQL()
	assert.Contains(t, listSQL, "STRING_AGG(DISTINCT g.name, ',') AS genres")
	assert.Contains(t, listSQL, "STRING_AGG(DISTINCT t.name, ',') AS tags")
	assert.NotContains(t, listSQL, "GROUP_CONCAT")

	detail := detailSQL("postgres")
	assert.Contains(t, detail, "STRING_AGG(DISTINCT g.name, ',') AS genres")
	assert.Contains(t, detail, "STRING_AGG(DISTINCT t.name, ',') AS tags")
	assert.NotContains(t, detail, "GROUP_CONCAT")

	assert.Contains(t, detailSQL("sqlite"), "GROUP_CONCAT(DISTINCT g.name) AS genres")
}

func TestListSQLWithoutFilters(t *testing.T) {
	q := newCardQuery("sqlite", domain.ListRecipesRequest{Count: 24, Sort: domain.SortCreatedDesc})

	sql, args := q.listSQL()

	assert.Contains(t, sql, "0 AS match_count")
	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "favorites")
	assert.Equal(t, []any{24, 0}, args)
}

func TestOrderBy(t *testing.T) {
	tests := []struct {
		sort domain.SortOrder
		want string
	}{
		{domain.SortCreatedAsc, "m.created_at ASC"},
		{domain.SortCreatedDesc, "m.created_at DESC"},
		{domain.SortNameAsc, "m.name ASC"},
		{domain.SortNameDesc, "m.name DESC"},
		{domain.SortOrder(99), "m.created_at DESC"},
	}

	for _, tt := range tests {
		got := cardQuery{sort: tt.sort}.orderBy()
		assert.Equal(t, "match_count DESC, "+tt.want+", m.id DESC", got)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "soep", escapeLike("soep"))
}

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{}, splitNames(nil))

	empty := ""
	assert.Equal(t, []string{}, splitNames(&empty))

	joined := "Soep,Hoofdgerecht"
	require.Equal(t, []string{"Hoofdgerecht", "Soep"}, splitNames(&joined))
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []uint{1}, difference([]uint{1, 2}, []uint{2, 3}))
	assert.Equal(t, []uint{3}, difference([]uint{2, 3}, []uint{1, 2}))
	assert.Empty(t, difference(nil, []uint{1}))
}
