// Package store executes translated predicates against SQLite.
//
// Statements render SQLite's like(X, Y) function form and @name bind
// placeholders, which mattn/go-sqlite3 binds from sql.Named arguments:
//
//	stmt, _ := translate.Translate(pred)
//	rows, err := s.Select(ctx, "people", stmt)
//	// SELECT * FROM "people" WHERE Id <> @Id ORDER BY rowid
//
// Results are ordered by rowid so repeated queries return rows in the same
// order.
//
// Open applies WAL journaling, synchronous=NORMAL, a 5 second busy timeout
// and foreign key enforcement, and pins the pool to one connection so an
// in-memory fixture is visible to every call on the Store.
package store
