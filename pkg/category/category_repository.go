package category

import (
	"context"
	"fmt"
	"strings"

	"wejv/domain"
	"wejv/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind selects one of the name-keyed lookup tables.
type Kind string

const (
	KindGenre  Kind = "genre"
	KindTag    Kind = "tag"
	KindAuthor Kind = "author"
)

func (k Kind) table() (string, error) {
	switch k {
	case KindGenre:
		return "genres", nil
	case KindTag:
		return "tags", nil
	case KindAuthor:
		return "authors", nil
	default:
		return "", fmt.Errorf("unknown lookup kind %q", k)
	}
}

type (
	CategoryRepository interface {
		ResolveOrCreate(ctx context.Context, kind Kind, name string) (uint, error)
		ResolveAll(ctx context.Context, kind Kind, names []string) ([]uint, error)
		CountExisting(ctx context.Context, kind Kind, ids []uint) (int64, error)
		FetchFilterOptions(ctx context.Context) (map[domain.FilterCategory][]domain.FilterOption, error)
		FindPrepareTimeGroup(ctx context.Context, minutes int) (*uint, error)
		WithTx(tx *gorm.DB) CategoryRepository
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepository{db: tx}
}

// NormalizeName trims surrounding whitespace. Case is significant.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ResolveOrCreate returns the id of the row called name, inserting it first when missing.
// The insert ignores unique conflicts so concurrent callers converge on one row.
func (r *categoryRepository) ResolveOrCreate(ctx context.Context, kind Kind, name string) (uint, error) {
	table, err := kind.table()
	if err != nil {
		return 0, err
	}
	name = NormalizeName(name)
	if name == "" {
		return 0, fmt.Errorf("%s name must not be empty", kind)
	}

	err = r.db.WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(map[string]any{"name": name}).Error
	if err != nil {
		return 0, fmt.Errorf("insert %s %q: %w", kind, name, err)
	}

	var id uint
	err = r.db.WithContext(ctx).
		Table(table).
		Select("id").
		Where("name = ?", name).
		Limit(1).
		Scan(&id).Error
	if err != nil {
		return 0, fmt.Errorf("lookup %s %q: %w", kind, name, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("lookup %s %q: row missing after insert", kind, name)
	}

	return id, nil
}

// ResolveAll resolves every distinct name, preserving first-seen order.
func (r *categoryRepository) ResolveAll(ctx context.Context, kind Kind, names []string) ([]uint, error) {
	seen := make(map[string]struct{}, len(names))
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		name = NormalizeName(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		id, err := r.ResolveOrCreate(ctx, kind, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *categoryRepository) CountExisting(ctx context.Context, kind Kind, ids []uint) (int64, error) {
	table, err := kind.table()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Table(table).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *categoryRepository) FetchFilterOptions(ctx context.Context) (map[domain.FilterCategory][]domain.FilterOption, error) {
	tables := map[domain.FilterCategory]string{
		domain.CategoryGenre:            "genres",
		domain.CategoryAuthor:           "authors",
		domain.CategoryTag:              "tags",
		domain.CategoryPrepareTimeGroup: "prepare_time_groups",
	}

	res := make(map[domain.FilterCategory][]domain.FilterOption, len(tables))
	for _, category := range domain.FilterCategories {
		options := make([]domain.FilterOption, 0)
		if err := r.db.WithContext(ctx).
			Table(tables[category]).
			Select("id, name").
			Order("id").
			Scan(&options).Error; err != nil {
			return nil, fmt.Errorf("fetch %s options: %w", category, err)
		}
		res[category] = options
	}
	return res, nil
}

// FindPrepareTimeGroup returns the bucket holding minutes, or nil when none does.
func (r *categoryRepository) FindPrepareTimeGroup(ctx context.Context, minutes int) (*uint, error) {
	var groups []entities.PrepareTimeGroup
	if err := r.db.WithContext(ctx).Order("min_minutes").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("fetch prepare time groups: %w", err)
	}

	for _, group := range groups {
		if group.Contains(minutes) {
			id := group.ID
			return &id, nil
		}
	}
	return nil, nil
}
