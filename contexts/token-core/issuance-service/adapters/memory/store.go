package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"stablecoin/contexts/token-core/issuance-service/domain/entities"
	domainerrors "stablecoin/contexts/token-core/issuance-service/domain/errors"
	"stablecoin/contexts/token-core/issuance-service/ports"
	"stablecoin/internal/shared/addressing"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the entity store and outbox
// ports. It is intended for tests and local development wiring. Every
// mutation appends its audit row under the same lock, so entity and outbox
// state never diverge.
type Store struct {
	mu sync.RWMutex

	configs   map[addressing.Address]entities.Config
	minters   map[addressing.Address]entities.MinterQuota
	blacklist map[addressing.Address]entities.BlacklistEntry

	outbox map[string]outboxRow
}

type outboxRow struct {
	ports.OutboxMessage
	PublishedAt *time.Time
}

// NewStore builds an empty in-memory adapter.
func NewStore() *Store {
	return &Store{
		configs:   make(map[addressing.Address]entities.Config),
		minters:   make(map[addressing.Address]entities.MinterQuota),
		blacklist: make(map[addressing.Address]entities.BlacklistEntry),
		outbox:    make(map[string]outboxRow),
	}
}

func (s *Store) GetConfig(_ context.Context, address addressing.Address) (entities.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[address]
	if !ok {
		return entities.Config{}, domainerrors.ErrNotFound
	}
	return cfg, nil
}

// CreateConfig verifies uniqueness of both the config and its audit row
// before running createFn, so a createFn that succeeds is always followed
// by the commit and a failed precondition never reaches the ledger.
func (s *Store) CreateConfig(ctx context.Context, input ports.CreateConfigInput, createFn func(context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.configs[input.Config.Address]; exists {
		return domainerrors.ErrAlreadyExists
	}
	if input.Audit.OutboxID != "" {
		if _, exists := s.outbox[input.Audit.OutboxID]; exists {
			return domainerrors.ErrAlreadyExists
		}
	}
	if createFn != nil {
		if err := createFn(ctx); err != nil {
			return err
		}
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return err
	}
	s.configs[input.Config.Address] = input.Config
	return nil
}

func (s *Store) UpdateConfig(_ context.Context, input ports.UpdateConfigInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.configs[input.Config.Address]; !ok {
		return domainerrors.ErrNotFound
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return err
	}
	s.configs[input.Config.Address] = input.Config
	return nil
}

func (s *Store) GetMinter(_ context.Context, address addressing.Address) (entities.MinterQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.minters[address]
	if !ok {
		return entities.MinterQuota{}, domainerrors.ErrNotFound
	}
	return record, nil
}

func (s *Store) ListMinters(_ context.Context, configAddress addressing.Address) ([]entities.MinterQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.MinterQuota, 0)
	for _, record := range s.minters {
		if record.ConfigAddress == configAddress {
			items = append(items, record)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].Address < items[j].Address
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateMinter(_ context.Context, input ports.CreateMinterInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.minters[input.Minter.Address]; exists {
		return domainerrors.ErrAlreadyExists
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return err
	}
	s.minters[input.Minter.Address] = input.Minter
	return nil
}

func (s *Store) UpdateMinterQuota(_ context.Context, input ports.UpdateMinterQuotaInput) (entities.MinterQuota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.minters[input.Address]
	if !ok {
		return entities.MinterQuota{}, domainerrors.ErrNotFound
	}
	if input.NewQuota < record.Minted {
		return entities.MinterQuota{}, domainerrors.ErrQuotaExceeded
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return entities.MinterQuota{}, err
	}
	record.Quota = input.NewQuota
	record.UpdatedAt = input.UpdatedAt.UTC()
	s.minters[input.Address] = record
	return record, nil
}

func (s *Store) DeleteMinter(_ context.Context, input ports.DeleteMinterInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.minters[input.Address]; !ok {
		return domainerrors.ErrNotFound
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return err
	}
	delete(s.minters, input.Address)
	return nil
}

// ApplyMint re-checks the quota invariant under the store lock, runs the
// ledger-side mintFn, and persists the counter advance only when mintFn
// succeeds. A mintFn failure leaves both the record and the outbox
// untouched.
func (s *Store) ApplyMint(
	ctx context.Context,
	input ports.ApplyMintInput,
	mintFn func(context.Context) error,
) (entities.MinterQuota, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.minters[input.Address]
	if !ok {
		return entities.MinterQuota{}, domainerrors.ErrUnauthorized
	}
	if !record.CanMint(input.Amount) {
		return entities.MinterQuota{}, domainerrors.ErrQuotaExceeded
	}
	if mintFn != nil {
		if err := mintFn(ctx); err != nil {
			return entities.MinterQuota{}, err
		}
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return entities.MinterQuota{}, err
	}
	record.Minted += input.Amount
	record.UpdatedAt = input.MintedAt.UTC()
	s.minters[input.Address] = record
	return record, nil
}

func (s *Store) GetBlacklistEntry(_ context.Context, address addressing.Address) (entities.BlacklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.blacklist[address]
	if !ok {
		return entities.BlacklistEntry{}, domainerrors.ErrNotFound
	}
	return entry, nil
}

func (s *Store) ListBlacklist(_ context.Context, configAddress addressing.Address) ([]entities.BlacklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.BlacklistEntry, 0)
	for _, entry := range s.blacklist {
		if entry.ConfigAddress == configAddress {
			items = append(items, entry)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].Address < items[j].Address
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) CreateBlacklistEntry(_ context.Context, input ports.CreateBlacklistEntryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blacklist[input.Entry.Address]; exists {
		return domainerrors.ErrAlreadyBlacklisted
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return err
	}
	s.blacklist[input.Entry.Address] = input.Entry
	return nil
}

func (s *Store) DeleteBlacklistEntry(_ context.Context, input ports.DeleteBlacklistEntryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blacklist[input.Address]; !ok {
		return domainerrors.ErrNotFound
	}
	if err := s.appendOutboxLocked(input.Audit); err != nil {
		return err
	}
	delete(s.blacklist, input.Address)
	return nil
}

func (s *Store) Exists(_ context.Context, address addressing.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.configs[address]; ok {
		return true, nil
	}
	if _, ok := s.minters[address]; ok {
		return true, nil
	}
	if _, ok := s.blacklist[address]; ok {
		return true, nil
	}
	return false, nil
}

func (s *Store) ConfigPaused(_ context.Context, address addressing.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.configs[address]
	if !ok {
		return false, domainerrors.ErrNotFound
	}
	return cfg.Paused, nil
}

func (s *Store) AppendAudit(_ context.Context, record ports.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendOutboxLocked(record)
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.PublishedAt == nil {
			rows = append(rows, row.OutboxMessage)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].OutboxID < rows[j].OutboxID
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outbox[outboxID]
	if !ok {
		return errors.New("outbox record not found")
	}
	value := publishedAt.UTC()
	row.PublishedAt = &value
	s.outbox[outboxID] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutboxLocked(record ports.AuditRecord) error {
	if record.OutboxID == "" {
		return nil
	}
	if _, exists := s.outbox[record.OutboxID]; exists {
		return domainerrors.ErrAlreadyExists
	}
	s.outbox[record.OutboxID] = outboxRow{
		OutboxMessage: ports.OutboxMessage{
			OutboxID:  record.OutboxID,
			EventType: record.EventType,
			Payload:   append([]byte(nil), record.Payload...),
			CreatedAt: record.CreatedAt.UTC(),
		},
	}
	return nil
}

var _ ports.EntityStore = (*Store)(nil)
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
