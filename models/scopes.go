package models

import "gorm.io/gorm"

// NotDeleted keeps soft-deleted rows out of a query. Soft deletion is an
// explicit is_deleted flag rather than a default scope, so every listing
// query states its visibility intent.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// OwnedBy restricts a query to rows belonging to the given account. A row
// owned by someone else behaves exactly like a missing row.
func OwnedBy(ownerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
