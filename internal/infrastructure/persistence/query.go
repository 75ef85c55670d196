package persistence

import (
	"errors"
	"sort"
	"strings"

	"github.com/b3erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// listQuery describes how a shared.Filter maps onto one table.
// Filter keys missing from conditions are ignored.
type listQuery struct {
	searchColumns []string
	conditions    map[string]string
	sortFields    sortColumns
	defaultOrder  string
}

// apply adds predicates, ordering and pagination
func (q listQuery) apply(db *gorm.DB, filter shared.Filter) *gorm.DB {
	db = q.applyWithoutPagination(db, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		db = db.Offset(offset).Limit(filter.PageSize)
	}

	if col, ok := q.sortFields.orderBy(filter.OrderBy, filter.OrderDir); ok {
		return db.Order(col)
	}
	return db.Order(q.defaultOrder)
}

// applyWithoutPagination adds search and equality predicates only
func (q listQuery) applyWithoutPagination(db *gorm.DB, filter shared.Filter) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" && len(q.searchColumns) > 0 {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		parts := make([]string, len(q.searchColumns))
		args := make([]interface{}, len(q.searchColumns))
		for i, col := range q.searchColumns {
			parts[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		db = db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}

	keys := make([]string, 0, len(filter.Filters))
	for key := range filter.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cond, ok := q.conditions[key]
		if !ok {
			continue
		}
		value := filter.Filters[key]
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		db = db.Where(cond, value)
	}
	return db
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// translateError maps driver errors onto domain sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}

// deleteResult turns a delete outcome into ErrNotFound when nothing matched
func deleteResult(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// saveVersioned inserts a new aggregate or updates an existing one guarded
// by its version. The stored version must equal the one that was loaded.
func saveVersioned(tx *gorm.DB, model interface{}, agg shared.AggregateRoot) error {
	var versions []int
	if err := tx.Model(model).Where("id = ?", agg.GetID()).Pluck("version", &versions).Error; err != nil {
		return err
	}
	if len(versions) == 0 {
		return translateError(tx.Omit(clause.Associations).Create(model).Error)
	}
	loaded := agg.GetVersion()
	if versions[0] != loaded {
		return shared.ErrConcurrencyConflict
	}

	agg.IncrementVersion()
	result := tx.Select("*").Omit(clause.Associations).
		Where("version = ?", loaded).
		Save(model)
	if result.Error == nil && result.RowsAffected == 0 {
		result.Error = shared.ErrConcurrencyConflict
	}
	if result.Error != nil {
		// keep the in-memory version in step with the row
		agg.SetVersion(loaded)
		return translateError(result.Error)
	}
	return nil
}

// upsertChildren writes child rows keyed by primary key; rows must be a
// pointer to a slice.
func upsertChildren(tx *gorm.DB, rows interface{}, n int) error {
	if n == 0 {
		return nil
	}
	return translateError(tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(rows).Error)
}

// pruneChildren deletes child rows of parentID whose id is not in keep
func pruneChildren(tx *gorm.DB, model interface{}, fk string, parentID uuid.UUID, keep []uuid.UUID) error {
	query := tx.Where(fk+" = ?", parentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(model).Error
}
