package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stablecoin/contexts/token-core/transfer-hook-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/transfer-hook-service/domain/errors"
	"stablecoin/contexts/token-core/transfer-hook-service/ports"
	"stablecoin/internal/shared/addressing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the PostgreSQL adapter for hook registrations, so the
// guard's state survives restarts alongside the issuance records it reads.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetHook(ctx context.Context, address addressing.Address) (entities.HookConfig, error) {
	var row hookModel
	err := r.db.WithContext(ctx).
		Where("address = ?", address.String()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.HookConfig{}, domainerrors.ErrNotFound
		}
		return entities.HookConfig{}, r.logError("hook_repo_get_hook_failed", err, "address", address.String())
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateHook(ctx context.Context, hook entities.HookConfig) error {
	row := hookModelFromEntity(hook)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return r.logError("hook_repo_create_hook_failed", err, "address", row.Address)
	}
	return nil
}

func (r *Repository) UpdateHook(ctx context.Context, hook entities.HookConfig) error {
	row := hookModelFromEntity(hook)
	result := r.db.WithContext(ctx).
		Model(&hookModel{}).
		Where("address = ?", row.Address).
		Updates(map[string]any{
			"authority":  row.Authority,
			"paused":     row.Paused,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("hook_repo_update_hook_failed", result.Error, "address", row.Address)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "token-core/transfer-hook-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("hook repository operation failed", fields...)
	return err
}

type hookModel struct {
	Address              string    `gorm:"column:address;primaryKey"`
	AssetRef             string    `gorm:"column:asset_ref;uniqueIndex"`
	ControllingConfigRef string    `gorm:"column:controlling_config_ref"`
	Authority            string    `gorm:"column:authority"`
	Paused               bool      `gorm:"column:paused"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (hookModel) TableName() string {
	return "transfer_hooks"
}

func hookModelFromEntity(hook entities.HookConfig) hookModel {
	return hookModel{
		Address:              hook.Address.String(),
		AssetRef:             hook.AssetRef,
		ControllingConfigRef: hook.ControllingConfigRef.String(),
		Authority:            hook.Authority,
		Paused:               hook.Paused,
		CreatedAt:            hook.CreatedAt.UTC(),
		UpdatedAt:            hook.UpdatedAt.UTC(),
	}
}

func (m hookModel) toEntity() entities.HookConfig {
	return entities.HookConfig{
		Address:              addressing.Address(m.Address),
		AssetRef:             m.AssetRef,
		ControllingConfigRef: addressing.Address(m.ControllingConfigRef),
		Authority:            m.Authority,
		Paused:               m.Paused,
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.HookStore = (*Repository)(nil)
