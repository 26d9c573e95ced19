package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings) error
}

type settingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	sql := `SELECT id, church_name, logo, sender_id, message_channel,
				sms_provider, whatsapp_provider, automation_enabled, updated_at
			FROM settings ORDER BY id ASC LIMIT 1`

	var s domain.Settings
	err := r.db.QueryRow(ctx, sql).Scan(
		&s.ID, &s.ChurchName, &s.Logo, &s.SenderID, &s.MessageChannel,
		&s.SMSProvider, &s.WhatsAppProvider, &s.AutomationEnabled, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *domain.Settings) error {
	sql := `UPDATE settings
			SET church_name = $1, logo = $2, sender_id = $3, message_channel = $4,
				sms_provider = $5, whatsapp_provider = $6, automation_enabled = $7,
				updated_at = $8
			WHERE id = $9`

	settings.UpdatedAt = time.Now()
	cmdTag, err := r.db.Exec(ctx, sql,
		settings.ChurchName, settings.Logo, settings.SenderID, settings.MessageChannel,
		settings.SMSProvider, settings.WhatsAppProvider, settings.AutomationEnabled,
		settings.UpdatedAt, settings.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
