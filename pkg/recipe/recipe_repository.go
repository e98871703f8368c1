package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wejv/domain"
	"wejv/entities"
	"wejv/pkg/category"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		ListCards(ctx context.Context, req domain.ListRecipesRequest) ([]domain.RecipeCard, int64, error)
		FindDetail(ctx context.Context, id uint) (*domain.RecipeDetail, error)
		FindAuthorID(ctx context.Context, id uint) (uint, bool, error)
		MenuExists(ctx context.Context, id uint) (bool, error)
		CreateMenu(ctx context.Context, req domain.CreateRecipeRequest) (uint, error)
		InsertMenu(ctx context.Context, menu *entities.Menu, genreIDs, tagIDs []uint) error
		UpdateMenu(ctx context.Context, req domain.UpdateRecipeRequest) error
		DeleteMenu(ctx context.Context, id uint) error
	}

	recipeRepository struct {
		db         *gorm.DB
		categories category.CategoryRepository
	}

	// linkTable describes one menu association table.
	linkTable struct {
		table  string
		column string
		kind   category.Kind
		model  any
	}

	cardRow struct {
		ID          uint
		Name        string
		PrepareTime int
		Img         []byte
		AuthorID    uint
		Author      *string
		IsFavorite  *int64
		Genres      *string
		Tags        *string
		MatchCount  int64
	}

	detailRow struct {
		ID          uint
		AuthorID    uint
		Name        string
		PrepareTime int
		PersonNum   int
		Img         []byte
		Ingredients string
		Description string
		Preparation string
		CreatedAt   time.Time
		Author      *string
		Genres      *string
		Tags        *string
	}
)

var (
	genreLinks = linkTable{table: "menu_genres", column: "genre_id", kind: category.KindGenre, model: &entities.MenuGenre{}}
	tagLinks   = linkTable{table: "menu_tags", column: "tag_id", kind: category.KindTag, model: &entities.MenuTag{}}
)

func NewRecipeRepository(db *gorm.DB, categories category.CategoryRepository) RecipeRepository {
	return &recipeRepository{db: db, categories: categories}
}

func (r *recipeRepository) ListCards(ctx context.Context, req domain.ListRecipesRequest) ([]domain.RecipeCard, int64, error) {
	q := newCardQuery(r.db.Dialector.Name(), req)

	var rows []cardRow
	listSQL, listArgs := q.listSQL()
	if err := r.db.WithContext(ctx).Raw(listSQL, listArgs...).Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list cards: %w", err)
	}

	var total int64
	countSQL, countArgs := q.countSQL()
	if err := r.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count cards: %w", err)
	}

	cards := make([]domain.RecipeCard, 0, len(rows))
	for _, row := range rows {
		card := domain.RecipeCard{
			ID:          row.ID,
			Name:        row.Name,
			AuthorID:    row.AuthorID,
			Author:      row.Author,
			Genre:       splitNames(row.Genres),
			Tag:         splitNames(row.Tags),
			PrepareTime: row.PrepareTime,
			Img:         row.Img,
		}
		if q.favoriteOf != 0 {
			fav := row.IsFavorite != nil && *row.IsFavorite == 1
			card.IsFavorite = &fav
		}
		cards = append(cards, card)
	}

	return cards, total, nil
}

func (r *recipeRepository) FindDetail(ctx context.Context, id uint) (*domain.RecipeDetail, error) {
	var rows []detailRow
	if err := r.db.WithContext(ctx).Raw(detailSQL(r.db.Dialector.Name()), id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch recipe %d: %w", id, err)
	}
	if len(rows) == 0 || rows[0].ID == 0 {
		return nil, nil
	}

	row := rows[0]
	return &domain.RecipeDetail{
		ID:             row.ID,
		AuthorID:       row.AuthorID,
		Author:         row.Author,
		Name:           row.Name,
		PrepareTime:    row.PrepareTime,
		PersonNum:      row.PersonNum,
		Description:    row.Description,
		Preparation:    row.Preparation,
		Ingredients:    row.Ingredients,
		IngredientList: domain.SplitIngredients(row.Ingredients),
		Genre:          splitNames(row.Genres),
		Tag:            splitNames(row.Tags),
		Img:            row.Img,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func (r *recipeRepository) FindAuthorID(ctx context.Context, id uint) (uint, bool, error) {
	var menu entities.Menu
	err := r.db.WithContext(ctx).Select("id", "author_id").First(&menu, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return menu.AuthorID, true, nil
}

func (r *recipeRepository) MenuExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Menu{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateMenu resolves the author and category names and inserts the recipe in one transaction.
func (r *recipeRepository) CreateMenu(ctx context.Context, req domain.CreateRecipeRequest) (uint, error) {
	menu := &entities.Menu{
		Name:        req.Name,
		PrepareTime: req.PrepareTime,
		PersonNum:   req.PersonNum,
		AuthorID:    req.AuthorID,
		Description: req.Description,
		Preparation: req.Preparation,
		Ingredients: req.Ingredients,
		Img:         req.Image,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := r.categories.WithTx(tx)

		if menu.AuthorID == 0 {
			authorID, err := categories.ResolveOrCreate(ctx, category.KindAuthor, req.AuthorName)
			if err != nil {
				return err
			}
			menu.AuthorID = authorID
		}

		genreIDs, err := categories.ResolveAll(ctx, category.KindGenre, req.Genres)
		if err != nil {
			return err
		}
		tagIDs, err := categories.ResolveAll(ctx, category.KindTag, req.Tags)
		if err != nil {
			return err
		}

		return r.insertMenu(ctx, tx, categories, menu, genreIDs, tagIDs)
	})
	if err != nil {
		return 0, err
	}

	return menu.ID, nil
}

// InsertMenu writes a recipe row and its association rows atomically.
func (r *recipeRepository) InsertMenu(ctx context.Context, menu *entities.Menu, genreIDs, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.insertMenu(ctx, tx, r.categories.WithTx(tx), menu, genreIDs, tagIDs)
	})
}

func (r *recipeRepository) insertMenu(ctx context.Context, tx *gorm.DB, categories category.CategoryRepository, menu *entities.Menu, genreIDs, tagIDs []uint) error {
	group, err := categories.FindPrepareTimeGroup(ctx, menu.PrepareTime)
	if err != nil {
		return err
	}
	menu.PrepareTimeGroupID = group

	if err := tx.WithContext(ctx).Create(menu).Error; err != nil {
		return fmt.Errorf("insert menu: %w", err)
	}

	if err := r.link(ctx, tx, categories, genreLinks, menu.ID, dedupeIDs(genreIDs)); err != nil {
		return err
	}
	return r.link(ctx, tx, categories, tagLinks, menu.ID, dedupeIDs(tagIDs))
}

// link inserts association rows after checking every target exists.
func (r *recipeRepository) link(ctx context.Context, tx *gorm.DB, categories category.CategoryRepository, assoc linkTable, menuID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := categories.CountExisting(ctx, assoc.kind, ids)
	if err != nil {
		return fmt.Errorf("check %s ids: %w", assoc.kind, err)
	}
	if existing != int64(len(ids)) {
		return fmt.Errorf("link %s ids %v: %w", assoc.kind, ids, domain.ErrMissingReference)
	}

	rows := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, map[string]any{"menu_id": menuID, assoc.column: id})
	}

	err = tx.WithContext(ctx).
		Table(assoc.table).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rows).Error
	if err != nil {
		return fmt.Errorf("insert %s: %w", assoc.table, err)
	}
	return nil
}

func (r *recipeRepository) unlink(ctx context.Context, tx *gorm.DB, assoc linkTable, menuID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	err := tx.WithContext(ctx).
		Where("menu_id = ? AND "+assoc.column+" IN ?", menuID, ids).
		Delete(assoc.model).Error
	if err != nil {
		return fmt.Errorf("delete %s: %w", assoc.table, err)
	}
	return nil
}

// syncLinks makes the recipe's associations equal the submitted names: missing names are
// resolved and linked, dropped ones unlinked. Category rows themselves are never deleted.
func (r *recipeRepository) syncLinks(ctx context.Context, tx *gorm.DB, categories category.CategoryRepository, assoc linkTable, menuID uint, names []string) error {
	submitted, err := categories.ResolveAll(ctx, assoc.kind, names)
	if err != nil {
		return err
	}

	var current []uint
	if err := tx.WithContext(ctx).Table(assoc.table).Where("menu_id = ?", menuID).Pluck(assoc.column, &current).Error; err != nil {
		return fmt.Errorf("load %s: %w", assoc.table, err)
	}

	if err := r.unlink(ctx, tx, assoc, menuID, difference(current, submitted)); err != nil {
		return err
	}
	return r.link(ctx, tx, categories, assoc, menuID, difference(submitted, current))
}

func (r *recipeRepository) UpdateMenu(ctx context.Context, req domain.UpdateRecipeRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := r.categories.WithTx(tx)

		var menu entities.Menu
		if err := tx.Select("id").First(&menu, req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return fmt.Errorf("load menu %d: %w", req.ID, err)
		}

		group, err := categories.FindPrepareTimeGroup(ctx, req.PrepareTime)
		if err != nil {
			return err
		}

		updates := map[string]any{
			"name":                  req.Name,
			"prepare_time":          req.PrepareTime,
			"person_num":            req.PersonNum,
			"description":           req.Description,
			"preparation":           req.Preparation,
			"ingredients":           req.Ingredients,
			"prepare_time_group_id": group,
		}
		if req.Image != nil {
			updates["img"] = req.Image
		}

		if err := tx.Model(&entities.Menu{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update menu %d: %w", req.ID, err)
		}

		if err := r.syncLinks(ctx, tx, categories, genreLinks, req.ID, req.Genres); err != nil {
			return err
		}
		return r.syncLinks(ctx, tx, categories, tagLinks, req.ID, req.Tags)
	})
}

// DeleteMenu removes the recipe together with its links and favorites.
func (r *recipeRepository) DeleteMenu(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&entities.MenuGenre{}, &entities.MenuTag{}, &entities.Favorite{}} {
			if err := tx.Where("menu_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("delete %T for menu %d: %w", model, id, err)
			}
		}

		res := tx.Where("id = ?", id).Delete(&entities.Menu{})
		if res.Error != nil {
			return fmt.Errorf("delete menu %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}
		return nil
	})
}

// difference returns the ids in a that are not in b.
func difference(a, b []uint) []uint {
	drop := make(map[uint]struct{}, len(b))
	for _, id := range b {
		drop[id] = struct{}{}
	}
	out := make([]uint, 0)
	for _, id := range a {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
