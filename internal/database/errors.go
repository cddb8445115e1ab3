package database

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pgUniqueViolation = "23505"

var pgKeyDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)

// UniqueViolation reports whether err is a unique constraint violation raised
// by any of the supported drivers, and the offending column when the driver
// exposes it.
func UniqueViolation(err error) (column string, ok bool) {
	if err == nil {
		return "", false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique &&
			sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return "", false
		}
		// UNIQUE constraint failed: customer.email
		msg := sqliteErr.Error()
		if i := strings.LastIndex(msg, ": "); i >= 0 {
			return lastSegment(msg[i+2:]), true
		}
		return "", true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return pgColumn(pgErr.Detail, pgErr.ConstraintName), true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != pgUniqueViolation {
			return "", false
		}
		return pgColumn(pqErr.Detail, pqErr.Constraint), true
	}

	return "", false
}

func pgColumn(detail, constraint string) string {
	if m := pgKeyDetail.FindStringSubmatch(detail); m != nil {
		return m[1]
	}
	return constraint
}

func lastSegment(s string) string {
	// Composite indexes report "t.a, t.b"; the first column is enough.
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
