package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// Имена ограничений уникальности из миграций.
const (
	constraintUsersEmail      = "users_email_key"
	constraintUsersUsername   = "users_username_key"
	constraintCharacterName   = "characters_user_id_name_key"
	constraintOAuthAccount    = "oauth_accounts_provider_key"
	constraintChapterSequence = "chapters_story_id_sequence_key"
)

// uniqueViolation возвращает имя нарушенного ограничения, если err - это 23505.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}
