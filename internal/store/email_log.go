package store

import (
	"database/sql"
	"fmt"

	"github.com/mtcnamibia/careers/internal/model"
)

// EmailLogStore records every transactional email attempt, sent or not.
type EmailLogStore struct {
	db *sql.DB
}

func NewEmailLogStore(db *sql.DB) *EmailLogStore {
	return &EmailLogStore{db: db}
}

const emailLogCols = `id, application_id, recipient_email, email_type, subject, status, sent_at`

func scanEmailLog(scanner interface{ Scan(...any) error }) (*model.EmailLog, error) {
	var el model.EmailLog
	var appID sql.NullInt64

	err := scanner.Scan(
		&el.ID, &appID, &el.RecipientEmail, &el.EmailType,
		&el.Subject, &el.Status, &el.SentAt,
	)
	if err != nil {
		return nil, err
	}

	if appID.Valid {
		el.ApplicationID = &appID.Int64
	}
	return &el, nil
}

func (s *EmailLogStore) Create(applicationID *int64, recipient, emailType, subject, status string) (*model.EmailLog, error) {
	result, err := s.db.Exec(
		`INSERT INTO email_logs (application_id, recipient_email, email_type, subject, status)
		 VALUES (?, ?, ?, ?, ?)`,
		applicationID, recipient, emailType, subject, status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert email log: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+emailLogCols+` FROM email_logs WHERE id = ?`, id)
	return scanEmailLog(row)
}

// ListByApplication returns an application's email history, newest first.
func (s *EmailLogStore) ListByApplication(applicationID int64) ([]model.EmailLog, error) {
	rows, err := s.db.Query(
		`SELECT `+emailLogCols+` FROM email_logs WHERE application_id = ? ORDER BY sent_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	defer rows.Close()

	var logs []model.EmailLog
	for rows.Next() {
		el, err := scanEmailLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email log: %w", err)
		}
		logs = append(logs, *el)
	}
	return logs, rows.Err()
}
