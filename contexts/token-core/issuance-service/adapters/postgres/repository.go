package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/domain/valueobjects"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"
	"stablecoin/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the PostgreSQL adapter for the entity store and outbox
// ports. Entity writes and their audit rows share one transaction.
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

func (r *Repository) GetConfig(ctx context.Context, address addressing.Address) (entities.Config, error) {
	var row configModel
	err := r.db.WithContext(ctx).
		Where("address = ?", address.String()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Config{}, domainerrors.ErrNotFound
		}
		return entities.Config{}, r.logError("issuance_repo_get_config_failed", err, "address", address.String())
	}
	return row.toEntity(), nil
}

// CreateConfig inserts the config and its audit row first, so uniqueness
// failures surface before createFn touches the ledger; a createFn failure
// rolls the whole transaction back.
func (r *Repository) CreateConfig(ctx context.Context, input ports.CreateConfigInput, createFn func(context.Context) error) error {
	row := configModelFromEntity(input.Config)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyExists
			}
			return err
		}
		if err := appendOutbox(tx, input.Audit); err != nil {
			return err
		}
		if createFn != nil {
			return createFn(ctx)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return err
		}
		return r.logError("issuance_repo_create_config_failed", err, "address", row.Address)
	}
	return nil
}

func (r *Repository) UpdateConfig(ctx context.Context, input ports.UpdateConfigInput) error {
	row := configModelFromEntity(input.Config)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&configModel{}).
			Where("address = ?", row.Address).
			Updates(map[string]any{
				"master_authority": row.MasterAuthority,
				"paused":           row.Paused,
				"blacklister":      row.Blacklister,
				"pauser":           row.Pauser,
				"seizer":           row.Seizer,
				"updated_at":       row.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return appendOutbox(tx, input.Audit)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return r.logError("issuance_repo_update_config_failed", err, "address", row.Address)
	}
	return nil
}

func (r *Repository) GetMinter(ctx context.Context, address addressing.Address) (entities.MinterQuota, error) {
	var row minterModel
	err := r.db.WithContext(ctx).
		Where("address = ?", address.String()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MinterQuota{}, domainerrors.ErrNotFound
		}
		return entities.MinterQuota{}, r.logError("issuance_repo_get_minter_failed", err, "address", address.String())
	}
	return row.toEntity(), nil
}

func (r *Repository) ListMinters(ctx context.Context, configAddress addressing.Address) ([]entities.MinterQuota, error) {
	var rows []minterModel
	if err := r.db.WithContext(ctx).
		Where("config_address = ?", configAddress.String()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("issuance_repo_list_minters_failed", err, "config_address", configAddress.String())
	}
	items := make([]entities.MinterQuota, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateMinter(ctx context.Context, input ports.CreateMinterInput) error {
	row := minterModelFromEntity(input.Minter)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyExists
			}
			return err
		}
		return appendOutbox(tx, input.Audit)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return err
		}
		return r.logError("issuance_repo_create_minter_failed", err, "address", row.Address)
	}
	return nil
}

func (r *Repository) UpdateMinterQuota(ctx context.Context, input ports.UpdateMinterQuotaInput) (entities.MinterQuota, error) {
	var updated entities.MinterQuota
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row minterModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("address = ?", input.Address.String()).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if input.NewQuota < row.Minted {
			return domainerrors.ErrQuotaExceeded
		}
		row.Quota = input.NewQuota
		row.UpdatedAt = input.UpdatedAt.UTC()
		if err := tx.Model(&minterModel{}).
			Where("address = ?", row.Address).
			Updates(map[string]any{
				"quota":      row.Quota,
				"updated_at": row.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		if err := appendOutbox(tx, input.Audit); err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, domainerrors.ErrQuotaExceeded) {
			return entities.MinterQuota{}, err
		}
		return entities.MinterQuota{}, r.logError("issuance_repo_update_minter_quota_failed", err, "address", input.Address.String())
	}
	return updated, nil
}

func (r *Repository) DeleteMinter(ctx context.Context, input ports.DeleteMinterInput) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("address = ?", input.Address.String()).Delete(&minterModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return appendOutbox(tx, input.Audit)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return r.logError("issuance_repo_delete_minter_failed", err, "address", input.Address.String())
	}
	return nil
}

// ApplyMint locks the minter row, re-checks the quota invariant, runs the
// ledger-side mintFn, and advances the counter. A mintFn failure rolls the
// whole transaction back.
func (r *Repository) ApplyMint(
	ctx context.Context,
	input ports.ApplyMintInput,
	mintFn func(context.Context) error,
) (entities.MinterQuota, error) {
	var updated entities.MinterQuota
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row minterModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("address = ?", input.Address.String()).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrUnauthorized
			}
			return err
		}
		if input.Amount > row.Quota || row.Minted > row.Quota-input.Amount {
			return domainerrors.ErrQuotaExceeded
		}
		if mintFn != nil {
			if err := mintFn(ctx); err != nil {
				return err
			}
		}
		row.Minted += input.Amount
		row.UpdatedAt = input.MintedAt.UTC()
		if err := tx.Model(&minterModel{}).
			Where("address = ?", row.Address).
			Updates(map[string]any{
				"minted":     row.Minted,
				"updated_at": row.UpdatedAt,
			}).Error; err != nil {
			return err
		}
		if err := appendOutbox(tx, input.Audit); err != nil {
			return err
		}
		updated = row.toEntity()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUnauthorized) || errors.Is(err, domainerrors.ErrQuotaExceeded) {
			return entities.MinterQuota{}, err
		}
		return entities.MinterQuota{}, r.logError("issuance_repo_apply_mint_failed", err, "address", input.Address.String())
	}
	return updated, nil
}

func (r *Repository) GetBlacklistEntry(ctx context.Context, address addressing.Address) (entities.BlacklistEntry, error) {
	var row blacklistModel
	err := r.db.WithContext(ctx).
		Where("address = ?", address.String()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BlacklistEntry{}, domainerrors.ErrNotFound
		}
		return entities.BlacklistEntry{}, r.logError("issuance_repo_get_blacklist_entry_failed", err, "address", address.String())
	}
	return row.toEntity(), nil
}

func (r *Repository) ListBlacklist(ctx context.Context, configAddress addressing.Address) ([]entities.BlacklistEntry, error) {
	var rows []blacklistModel
	if err := r.db.WithContext(ctx).
		Where("config_address = ?", configAddress.String()).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("issuance_repo_list_blacklist_failed", err, "config_address", configAddress.String())
	}
	items := make([]entities.BlacklistEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateBlacklistEntry(ctx context.Context, input ports.CreateBlacklistEntryInput) error {
	row := blacklistModelFromEntity(input.Entry)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyBlacklisted
			}
			return err
		}
		return appendOutbox(tx, input.Audit)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyBlacklisted) {
			return err
		}
		return r.logError("issuance_repo_create_blacklist_entry_failed", err, "address", row.Address)
	}
	return nil
}

func (r *Repository) DeleteBlacklistEntry(ctx context.Context, input ports.DeleteBlacklistEntryInput) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("address = ?", input.Address.String()).Delete(&blacklistModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return appendOutbox(tx, input.Audit)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		return r.logError("issuance_repo_delete_blacklist_entry_failed", err, "address", input.Address.String())
	}
	return nil
}

func (r *Repository) Exists(ctx context.Context, address addressing.Address) (bool, error) {
	value := address.String()
	for _, model := range []any{&configModel{}, &minterModel{}, &blacklistModel{}} {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(model).
			Where("address = ?", value).
			Count(&count).Error; err != nil {
			return false, r.logError("issuance_repo_exists_failed", err, "address", value)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) ConfigPaused(ctx context.Context, address addressing.Address) (bool, error) {
	cfg, err := r.GetConfig(ctx, address)
	if err != nil {
		return false, err
	}
	return cfg.Paused, nil
}

func (r *Repository) AppendAudit(ctx context.Context, record ports.AuditRecord) error {
	if err := appendOutbox(r.db.WithContext(ctx), record); err != nil {
		return r.logError("issuance_repo_append_audit_failed", err, "outbox_id", record.OutboxID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("issuance_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   append([]byte(nil), row.Payload...),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("issuance_repo_mark_outbox_published_failed", result.Error, "outbox_id", outboxID)
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
		"module", "token-core/issuance-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("issuance repository operation failed", fields...)
	return err
}

func appendOutbox(tx *gorm.DB, record ports.AuditRecord) error {
	if record.OutboxID == "" {
		return nil
	}
	row := outboxModel{
		OutboxID:  record.OutboxID,
		EventType: record.EventType,
		Payload:   append([]byte(nil), record.Payload...),
		Status:    outbox.StatusPending,
		CreatedAt: record.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return tx.Create(&row).Error
}

type configModel struct {
	Address                  string    `gorm:"column:address;primaryKey"`
	AssetRef                 string    `gorm:"column:asset_ref;uniqueIndex"`
	MasterAuthority          string    `gorm:"column:master_authority"`
	Name                     string    `gorm:"column:name"`
	Symbol                   string    `gorm:"column:symbol"`
	URI                      string    `gorm:"column:uri"`
	Decimals                 uint8     `gorm:"column:decimals"`
	Paused                   bool      `gorm:"column:paused"`
	PermanentDelegateEnabled bool      `gorm:"column:permanent_delegate_enabled"`
	TransferHookEnabled      bool      `gorm:"column:transfer_hook_enabled"`
	DefaultAccountFrozen     bool      `gorm:"column:default_account_frozen"`
	Blacklister              string    `gorm:"column:blacklister"`
	Pauser                   string    `gorm:"column:pauser"`
	Seizer                   string    `gorm:"column:seizer"`
	CreatedAt                time.Time `gorm:"column:created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at"`
}

func (configModel) TableName() string {
	return "token_configs"
}

func configModelFromEntity(cfg entities.Config) configModel {
	return configModel{
		Address:                  cfg.Address.String(),
		AssetRef:                 cfg.AssetRef,
		MasterAuthority:          cfg.MasterAuthority.String(),
		Name:                     cfg.Name,
		Symbol:                   cfg.Symbol,
		URI:                      cfg.URI,
		Decimals:                 cfg.Decimals,
		Paused:                   cfg.Paused,
		PermanentDelegateEnabled: cfg.PermanentDelegateEnabled,
		TransferHookEnabled:      cfg.TransferHookEnabled,
		DefaultAccountFrozen:     cfg.DefaultAccountFrozen,
		Blacklister:              cfg.Blacklister.String(),
		Pauser:                   cfg.Pauser.String(),
		Seizer:                   cfg.Seizer.String(),
		CreatedAt:                cfg.CreatedAt.UTC(),
		UpdatedAt:                cfg.UpdatedAt.UTC(),
	}
}

func (m configModel) toEntity() entities.Config {
	return entities.Config{
		Address:                  addressing.Address(m.Address),
		AssetRef:                 m.AssetRef,
		MasterAuthority:          valueobjects.Principal(m.MasterAuthority),
		Name:                     m.Name,
		Symbol:                   m.Symbol,
		URI:                      m.URI,
		Decimals:                 m.Decimals,
		Paused:                   m.Paused,
		PermanentDelegateEnabled: m.PermanentDelegateEnabled,
		TransferHookEnabled:      m.TransferHookEnabled,
		DefaultAccountFrozen:     m.DefaultAccountFrozen,
		Blacklister:              valueobjects.Principal(m.Blacklister),
		Pauser:                   valueobjects.Principal(m.Pauser),
		Seizer:                   valueobjects.Principal(m.Seizer),
		CreatedAt:                m.CreatedAt.UTC(),
		UpdatedAt:                m.UpdatedAt.UTC(),
	}
}

type minterModel struct {
	Address       string    `gorm:"column:address;primaryKey"`
	ConfigAddress string    `gorm:"column:config_address;index"`
	Authority     string    `gorm:"column:authority"`
	Quota         uint64    `gorm:"column:quota"`
	Minted        uint64    `gorm:"column:minted"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (minterModel) TableName() string {
	return "token_minters"
}

func minterModelFromEntity(record entities.MinterQuota) minterModel {
	return minterModel{
		Address:       record.Address.String(),
		ConfigAddress: record.ConfigAddress.String(),
		Authority:     record.Authority.String(),
		Quota:         record.Quota,
		Minted:        record.Minted,
		CreatedAt:     record.CreatedAt.UTC(),
		UpdatedAt:     record.UpdatedAt.UTC(),
	}
}

func (m minterModel) toEntity() entities.MinterQuota {
	return entities.MinterQuota{
		Address:       addressing.Address(m.Address),
		ConfigAddress: addressing.Address(m.ConfigAddress),
		Authority:     valueobjects.Principal(m.Authority),
		Quota:         m.Quota,
		Minted:        m.Minted,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type blacklistModel struct {
	Address       string    `gorm:"column:address;primaryKey"`
	ConfigAddress string    `gorm:"column:config_address;index"`
	UserID        string    `gorm:"column:user_id"`
	Reason        string    `gorm:"column:reason"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (blacklistModel) TableName() string {
	return "token_blacklist_entries"
}

func blacklistModelFromEntity(entry entities.BlacklistEntry) blacklistModel {
	return blacklistModel{
		Address:       entry.Address.String(),
		ConfigAddress: entry.ConfigAddress.String(),
		UserID:        entry.User.String(),
		Reason:        entry.Reason,
		CreatedAt:     entry.CreatedAt.UTC(),
	}
}

func (m blacklistModel) toEntity() entities.BlacklistEntry {
	return entities.BlacklistEntry{
		Address:       addressing.Address(m.Address),
		ConfigAddress: addressing.Address(m.ConfigAddress),
		User:          valueobjects.Principal(m.UserID),
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "token_audit_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.EntityStore = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
