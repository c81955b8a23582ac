// Package gormfilter applies translated predicates to GORM queries.
//
//	stmt, _ := translate.Translate(pred)
//	db.Model(&Person{}).Scopes(gormfilter.Scope(stmt)).Find(&people)
//
// GORM expands the statement's @name placeholders from its sql.Named
// arguments, so the same Statement works with any GORM dialect whose SQL
// accepts the LIKE(X, Y) function form.
package gormfilter

import (
	"errors"

	"gorm.io/gorm"

	"github.com/roach88/rowfilter/internal/filter"
	"github.com/roach88/rowfilter/internal/translate"
)

// ErrNilStatement is added to the query when a scope is built from nil.
var ErrNilStatement = errors.New("gormfilter: nil statement")

// Scope adds stmt as a WHERE condition. Field names are used as column names
// unchanged.
func Scope(stmt *translate.Statement) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if stmt == nil {
			_ = db.AddError(ErrNilStatement)
			return db
		}
		return db.Where(stmt.QueryText(), stmt.NamedArgs()...)
	}
}

// ColumnScope is like Scope but maps each field name through the session's
// naming strategy first, so Go-style field names (FullName) match GORM
// column names (full_name).
func ColumnScope(stmt *translate.Statement) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if stmt == nil {
			_ = db.AddError(ErrNilStatement)
			return db
		}
		namer := db.NamingStrategy
		table := ""
		if db.Statement != nil {
			table = db.Statement.Table
		}
		mapped := filter.MapMembers(stmt.Filter(), func(name string) string {
			return namer.ColumnName(table, name)
		})
		return db.Where(mapped.QueryText(), stmt.NamedArgs()...)
	}
}
