package repo

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Keyed is a model carrying a uuid primary key that is assigned on create.
type Keyed interface {
	PrimaryKey() *uuid.UUID
}

// UpsertByKey inserts model, or overwrites every column of the row whose
// keyColumn equals key. The row id and created_at are preserved on update.
// It reports whether a row was created.
func UpsertByKey[M Keyed](tx *gorm.DB, model M, keyColumn string, key any) (uuid.UUID, bool, error) {
	*model.PrimaryKey() = uuid.Nil
	var ids []uuid.UUID
	if err := tx.Model(model).Where(keyColumn+" = ?", key).Limit(1).Pluck("id", &ids).Error; err != nil {
		return uuid.Nil, false, fmt.Errorf("looking up %s: %w", keyColumn, err)
	}

	if len(ids) == 0 {
		if err := tx.Create(model).Error; err != nil {
			return uuid.Nil, false, err
		}
		return *model.PrimaryKey(), true, nil
	}

	*model.PrimaryKey() = ids[0]
	if err := tx.Model(model).Select("*").Omit("id", "created_at").Updates(model).Error; err != nil {
		return uuid.Nil, false, err
	}
	return ids[0], false, nil
}

// IDMap loads keyColumn -> id for every row of table with a non-null key.
func IDMap(tx *gorm.DB, table, keyColumn string) (map[string]uuid.UUID, error) {
	type row struct {
		LookupKey string
		ID        uuid.UUID
	}
	var rows []row
	err := tx.Table(table).
		Select(keyColumn+" AS lookup_key, id").
		Where(keyColumn + " IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading %s.%s map: %w", table, keyColumn, err)
	}
	out := make(map[string]uuid.UUID, len(rows))
	for _, r := range rows {
		if r.LookupKey != "" {
			out[r.LookupKey] = r.ID
		}
	}
	return out, nil
}
