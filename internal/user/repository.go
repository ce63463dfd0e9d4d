package user

import (
	"context"
	"strings"

	dbx "github.com/go-ozzo/ozzo-dbx"
	"github.com/moalemy/salla-webhook/pkg/dbcontext"
	"github.com/moalemy/salla-webhook/pkg/log"
	"github.com/moalemy/salla-webhook/pkg/phone"
)

// Repository looks up users in one of the app's user tables.
type Repository interface {
	// FindByEmail returns the id of the user with the given email, or "" when none matches.
	FindByEmail(ctx context.Context, email string) (string, error)
	// FindByPhone returns the id of the user whose stored phone number matches
	// the given normalized number or its last-9-digit form, or "" when none matches.
	FindByPhone(ctx context.Context, normalized, last9 string) (string, error)
}

type repository struct {
	db     *dbcontext.DB
	table  string
	logger log.Logger
}

// NewProfileRepository creates a repository over the user_profiles table.
func NewProfileRepository(db *dbcontext.DB, logger log.Logger) Repository {
	return repository{db: db, table: "user_profiles", logger: logger}
}

// NewUserRepository creates a repository over the users table.
func NewUserRepository(db *dbcontext.DB, logger log.Logger) Repository {
	return repository{db: db, table: "users", logger: logger}
}

type userRow struct {
	ID          string `db:"id"`
	PhoneNumber string `db:"phone_number"`
}

// FindByEmail implements Repository.
func (r repository) FindByEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}

	var rows []userRow
	err := r.db.With(ctx).
		Select("id").
		From(r.table).
		Where(dbx.NewExp("LOWER(email) = {:email}", dbx.Params{"email": email})).
		Limit(1).
		All(&rows)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].ID, nil
}

// FindByPhone implements Repository. Stored numbers may predate the current
// normalization rules, so every candidate row is normalized before comparing.
func (r repository) FindByPhone(ctx context.Context, normalized, last9 string) (string, error) {
	if normalized == "" {
		return "", nil
	}

	var rows []userRow
	err := r.db.With(ctx).
		Select("id", "phone_number").
		From(r.table).
		Where(dbx.NewExp("phone_number IS NOT NULL AND phone_number <> ''")).
		All(&rows)
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		stored := phone.Normalize(row.PhoneNumber)
		if stored == normalized {
			return row.ID, nil
		}
		if last9 != "" && phone.Last9(row.PhoneNumber) == last9 {
			return row.ID, nil
		}
	}
	return "", nil
}
