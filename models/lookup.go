package models

import (
	"gorm.io/gorm"
)

// LookupIdByLegacyId returns the target id of the T row whose stored legacy
// id column matches. The tenant guard scopes the query to the context tenant.
// ok is false when no row matches; callers apply kind-specific fallback.
func LookupIdByLegacyId[T any](tx *gorm.DB, column string, legacyId int) (int, bool, error) {
	var id int
	err := tx.Model(new(T)).
		Where(column+" = ?", legacyId).
		Limit(1).
		Select("id").
		Scan(&id).Error
	if err != nil {
		return 0, false, err
	}
	return id, id != 0, nil
}
