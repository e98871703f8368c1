package recipe

import (
	"sort"
	"strings"

	"wejv/domain"
)

const cardJoins = `
	LEFT JOIN authors a ON a.id = m.author_id
	LEFT JOIN menu_genres mg ON mg.menu_id = m.id
	LEFT JOIN genres g ON g.id = mg.genre_id
	LEFT JOIN menu_tags mt ON mt.menu_id = m.id
	LEFT JOIN tags t ON t.id = mt.tag_id`

type activeFilter struct {
	category domain.FilterCategory
	ids      []uint
}

// cardQuery assembles the discover listing. Every user supplied value ends up in args;
// the SQL text only ever contains fixed fragments and placeholders.
type cardQuery struct {
	dialect    string
	filters    []activeFilter
	favoriteOf uint
	search     string
	sort       domain.SortOrder
	offset     int
	limit      int
}

func newCardQuery(dialect string, req domain.ListRecipesRequest) cardQuery {
	q := cardQuery{
		dialect:    dialect,
		favoriteOf: req.FavoriteOf,
		search:     strings.TrimSpace(req.Search),
		sort:       req.Sort,
		offset:     req.Start,
		limit:      req.Count,
	}

	for _, category := range domain.FilterCategories {
		ids := dedupeIDs(req.Filters[category])
		if len(ids) == 0 {
			continue
		}
		q.filters = append(q.filters, activeFilter{category: category, ids: ids})
	}

	return q
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(ids []uint) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// probe is the per-category inclusion test. Association categories use EXISTS so the
// outer joins still see every genre and tag of a matching recipe.
func (f activeFilter) probe() (string, []any) {
	in := "(" + placeholders(len(f.ids)) + ")"

	switch f.category {
	case domain.CategoryGenre:
		return "EXISTS (SELECT 1 FROM menu_genres xg WHERE xg.menu_id = m.id AND xg.genre_id IN " + in + ")", idArgs(f.ids)
	case domain.CategoryTag:
		return "EXISTS (SELECT 1 FROM menu_tags xt WHERE xt.menu_id = m.id AND xt.tag_id IN " + in + ")", idArgs(f.ids)
	case domain.CategoryPrepareTimeGroup:
		return "m.prepare_time_group_id IN " + in, idArgs(f.ids)
	default:
		return "m.author_id IN " + in, idArgs(f.ids)
	}
}

// matchCount sums one point per satisfied category.
func (q cardQuery) matchCount() (string, []any) {
	if len(q.filters) == 0 {
		return "0", nil
	}

	exprs := make([]string, 0, len(q.filters))
	args := make([]any, 0)
	for _, f := range q.filters {
		probe, probeArgs := f.probe()
		exprs = append(exprs, "CASE WHEN "+probe+" THEN 1 ELSE 0 END")
		args = append(args, probeArgs...)
	}
	return "(" + strings.Join(exprs, " + ") + ")", args
}

func (q cardQuery) joins() (string, []any) {
	if q.favoriteOf == 0 {
		return cardJoins, nil
	}
	return cardJoins + "\n\tLEFT JOIN favorites f ON f.menu_id = m.id AND f.user_id = ?", []any{q.favoriteOf}
}

func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func (q cardQuery) where() (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0)

	if len(q.filters) > 0 {
		probes := make([]string, 0, len(q.filters))
		for _, f := range q.filters {
			probe, probeArgs := f.probe()
			probes = append(probes, probe)
			args = append(args, probeArgs...)
		}
		clauses = append(clauses, "("+strings.Join(probes, " OR ")+")")
	}

	if q.search != "" {
		pattern := "%" + escapeLike(q.search) + "%"
		like := likeOperator(q.dialect)
		clauses = append(clauses, `(m.name `+like+` ? ESCAPE '\' OR m.description `+like+` ? ESCAPE '\' OR a.name `+like+` ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if q.favoriteOf != 0 {
		clauses = append(clauses, "(f.user_id IS NOT NULL)")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (q cardQuery) orderBy() string {
	key := "m.created_at DESC"
	switch q.sort {
	case domain.SortCreatedAsc:
		key = "m.created_at ASC"
	case domain.SortNameAsc:
		key = "m.name ASC"
	case domain.SortNameDesc:
		key = "m.name DESC"
	}
	return "match_count DESC, " + key + ", m.id DESC"
}

// likeOperator returns the case-insensitive match operator. sqlite's LIKE only folds ASCII
// letters, so other characters match there by exact case.
func likeOperator(dialect string) string {
	if dialect == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

func aggregateNames(dialect, column string) string {
	if dialect == "postgres" {
		return "STRING_AGG(DISTINCT " + column + ", ',')"
	}
	return "GROUP_CONCAT(DISTINCT " + column + ")"
}

func (q cardQuery) listSQL() (string, []any) {
	match, matchArgs := q.matchCount()
	joins, joinArgs := q.joins()
	where, whereArgs := q.where()

	favorite := ""
	if q.favoriteOf != 0 {
		favorite = "MAX(CASE WHEN f.user_id IS NOT NULL THEN 1 ELSE 0 END) AS is_favorite,"
	}

	sql := `
SELECT m.id, m.name, m.prepare_time, m.img, m.author_id,
	a.name AS author,
	` + favorite + `
	` + aggregateNames(q.dialect, "g.name") + ` AS genres,
	` + aggregateNames(q.dialect, "t.name") + ` AS tags,
	` + match + ` AS match_count
FROM menus m` + joins + `
` + where + `
GROUP BY m.id, a.name
ORDER BY ` + q.orderBy() + `
LIMIT ? OFFSET ?`

	args := make([]any, 0, len(matchArgs)+len(joinArgs)+len(whereArgs)+2)
	args = append(args, matchArgs...)
	args = append(args, joinArgs...)
	args = append(args, whereArgs...)
	args = append(args, q.limit, q.offset)
	return sql, args
}

func (q cardQuery) countSQL() (string, []any) {
	joins, joinArgs := q.joins()
	where, whereArgs := q.where()

	sql := `
SELECT COUNT(DISTINCT m.id)
FROM menus m` + joins + `
` + where

	args := make([]any, 0, len(joinArgs)+len(whereArgs))
	args = append(args, joinArgs...)
	args = append(args, whereArgs...)
	return sql, args
}

func detailSQL(dialect string) string {
	return `
SELECT m.id, m.author_id, m.name, m.prepare_time, m.person_num, m.img,
	m.ingredients, m.description, m.preparation, m.created_at,
	a.name AS author,
	` + aggregateNames(dialect, "g.name") + ` AS genres,
	` + aggregateNames(dialect, "t.name") + ` AS tags
FROM menus m` + cardJoins + `
WHERE m.id = ?
GROUP BY m.id, a.name`
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// splitNames unpacks an aggregated name list into sorted names.
func splitNames(joined *string) []string {
	if joined == nil || *joined == "" {
		return []string{}
	}
	names := strings.Split(*joined, ",")
	sort.Strings(names)
	return names
}
