package database

import (
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mutate is the per-record atomic read-modify-write primitive. It loads the
// record under a row lock, applies fn and writes the record back within a
// single transaction. Multi-record operations are sequences of these calls;
// there is no cross-record transaction in this service.
func Mutate[T any](id uint, fn func(record *T) error) error {
	return C.Transaction(func(tx *gorm.DB) error {
		query := tx
		// sqlite has no row locks and serializes writers on its own
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var record T
		if err := query.First(&record, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&record); err != nil {
			return err
		}

		return tx.Save(&record).Error
	})
}

// SliceContains narrows tx to records whose JSON ID-set column contains id.
func SliceContains(tx *gorm.DB, column string, id uint) *gorm.DB {
	switch tx.Dialector.Name() {
	case "postgres":
		return tx.Where(
			fmt.Sprintf("%s @> ?", column),
			datatypes.JSON(strconv.FormatUint(uint64(id), 10)),
		)
	default:
		return tx.Where(
			fmt.Sprintf("EXISTS(SELECT 1 FROM json_each(%s) WHERE json_each.value = ?)", column),
			id,
		)
	}
}
