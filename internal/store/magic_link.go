package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtcnamibia/careers/internal/model"
)

// linkTTL is how long a magic link stays redeemable after issuance.
const linkTTL = 15 * time.Minute

type MagicLinkStore struct {
	db *sql.DB
}

func NewMagicLinkStore(db *sql.DB) *MagicLinkStore {
	return &MagicLinkStore{db: db}
}

const magicLinkCols = `id, token, email, user_type, expires_at, used_at, created_at`

func scanMagicLink(scanner interface{ Scan(...any) error }) (*model.MagicLink, error) {
	var ml model.MagicLink
	var usedAt sql.NullTime

	err := scanner.Scan(
		&ml.ID, &ml.Token, &ml.Email, &ml.UserType,
		&ml.ExpiresAt, &usedAt, &ml.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if usedAt.Valid {
		ml.UsedAt = &usedAt.Time
	}
	return &ml, nil
}

// Create issues a new single-use login link for the email and account kind.
// The token is a v4 UUID and the link expires 15 minutes after issuance.
func (s *MagicLinkStore) Create(email, userType string) (*model.MagicLink, error) {
	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(linkTTL)

	result, err := s.db.Exec(
		`INSERT INTO magic_links (token, email, user_type, expires_at) VALUES (?, ?, ?, ?)`,
		token, email, userType, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert magic link: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+magicLinkCols+` FROM magic_links WHERE id = ?`, id)
	return scanMagicLink(row)
}

// GetByToken returns the magic link with the given token regardless of its
// state, or nil if no such token was ever issued.
func (s *MagicLinkStore) GetByToken(token string) (*model.MagicLink, error) {
	row := s.db.QueryRow(`SELECT `+magicLinkCols+` FROM magic_links WHERE token = ?`, token)
	ml, err := scanMagicLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get magic link by token: %w", err)
	}
	return ml, nil
}

// Consume redeems the token, returning the link it belonged to, or nil if
// the token is unknown, already used, or expired. The mark-used write is
// conditioned on the row still being unused and unexpired, so two racing
// calls with the same token get exactly one non-nil result.
func (s *MagicLinkStore) Consume(token string) (*model.MagicLink, error) {
	result, err := s.db.Exec(
		`UPDATE magic_links SET used_at = datetime('now')
		 WHERE token = ? AND used_at IS NULL AND expires_at > datetime('now')`,
		token,
	)
	if err != nil {
		return nil, fmt.Errorf("consume magic link: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	row := s.db.QueryRow(`SELECT `+magicLinkCols+` FROM magic_links WHERE token = ?`, token)
	ml, err := scanMagicLink(row)
	if err != nil {
		return nil, fmt.Errorf("reload consumed magic link: %w", err)
	}
	return ml, nil
}

// CountPendingByEmail returns the number of unexpired, unused links for an
// email address.
func (s *MagicLinkStore) CountPendingByEmail(email string) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM magic_links
		 WHERE email = ? AND used_at IS NULL AND expires_at > datetime('now')`,
		email,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending magic links: %w", err)
	}
	return count, nil
}

// DeleteExpired removes links past their expiry. Called from the periodic
// cleanup loop; stale rows are already unredeemable, this just keeps the
// table small.
func (s *MagicLinkStore) DeleteExpired() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM magic_links WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, fmt.Errorf("delete expired magic links: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}
