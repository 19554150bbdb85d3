package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zachkp/portfolio/internal/domain"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &messageRepository{db: db}
}

const messageColumns = `id, name, email, COALESCE(subject, ''), message, status, created_at`

func scanMessage(row rowScanner) (*domain.ContactMessage, error) {
	m := &domain.ContactMessage{}
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns messages newest first.
func (r *messageRepository) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+messageColumns+` FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*domain.ContactMessage{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	m, err := scanMessage(r.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return m, err
}

func (r *messageRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	query := `
	INSERT INTO contact_messages (id, name, email, subject, message, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Email, nullable(m.Subject), m.Message,
		string(m.Status), m.CreatedAt.UTC())
	return err
}

func (r *messageRepository) UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(result)
}
