package sqlite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/givplus/givlocal/core"
	"github.com/givplus/givlocal/pkg/cache"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DatabaseName is the fixed, well-known file name of the local
	// database. It doubles as the confirmation phrase for Reset.
	DatabaseName = "givplus.sqlite"

	// schemaVersion is the structural version written to schema_info.
	// Bump it together with a migration when stored layouts change.
	schemaVersion = 1
)

// Seed values for the deterministic first-run demo bootstrap.
const (
	SeedAdminEmail          = "admin@givplus.com"
	SeedAdminPassword       = "Admin123"
	SeedAssociationEmail    = "contact@zaka.org"
	SeedAssociationPassword = "Zaka2023"
	SeedCampaignTitle       = "ZAKA - Disaster Relief"
)

// Store is the embedded persistent store for accounts, campaigns and
// contributions. A Store owns its database handle exclusively; no other
// component touches the file.
type Store struct {
	db      *gorm.DB
	logger  *slog.Logger
	dataDir string
	cache   *cache.CampaignCache

	initMu      sync.Mutex
	initialized bool

	lockMu        sync.Mutex
	campaignLocks map[uint]*sync.Mutex

	// Fault injection point for the aggregate-update step. Tests only.
	testHookBeforeAggregate func() error
}

var _ core.StorageAdapter = (*Store)(nil)

// New opens (creating if absent) the local database under dataDir. An
// empty dataDir selects a shared in-memory database, useful for testing.
// Open failures map to core.ErrStoreUnavailable.
func New(dataDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var db *gorm.DB
	var err error
	if dataDir == "" {
		db, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
	} else {
		if _, statErr := os.Stat(dataDir); statErr != nil {
			if !errors.Is(statErr, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, statErr)
			}
			if mkErr := os.MkdirAll(dataDir, fs.ModePerm); mkErr != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, mkErr)
			}
		}
		dbPath := filepath.Join(dataDir, DatabaseName)
		connOpts := "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		db, err = gorm.Open(
			sqlite.Open(fmt.Sprintf("file:%s?%s", dbPath, connOpts)),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}

	return &Store{
		db:            db,
		logger:        logger,
		dataDir:       dataDir,
		cache:         cache.New(cache.Config{}),
		campaignLocks: make(map[uint]*sync.Mutex),
	}, nil
}

// Initialize migrates the schema, records the schema version and seeds
// the demo bootstrap data when the account collection is empty. Calling
// it again is a no-op that reports success.
func (s *Store) Initialize() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.initialized {
		s.logger.Debug("store already initialized", "component", "store")
		return nil
	}

	for _, model := range migrateModels {
		if err := s.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
		}
	}

	if err := s.checkSchemaVersion(); err != nil {
		return err
	}

	if err := s.seedDemoData(); err != nil {
		return err
	}

	s.initialized = true
	return nil
}

// checkSchemaVersion stamps a fresh database with the current version
// and refuses to open one written by a newer release.
func (s *Store) checkSchemaVersion() error {
	var info schemaInfo
	err := s.db.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		info = schemaInfo{Version: schemaVersion, UpdatedAt: time.Now()}
		if err := s.db.Create(&info).Error; err != nil {
			return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
	}
	if info.Version > schemaVersion {
		return fmt.Errorf("%w: stored %d, supported %d",
			core.ErrSchemaVersion, info.Version, schemaVersion)
	}
	if info.Version < schemaVersion {
		// AutoMigrate has already brought the tables forward; record it.
		info.Version = schemaVersion
		info.UpdatedAt = time.Now()
		if err := s.db.Save(&info).Error; err != nil {
			return fmt.Errorf("%w: %v", core.ErrStoreUnavailable, err)
		}
	}
	return nil
}

// seedDemoData creates one admin account, one association account and
// one campaign owned by it, but only when no accounts exist yet.
func (s *Store) seedDemoData() error {
	var count int64
	if err := s.db.Model(&accountModel{}).Count(&count).Error; err != nil {
		// Treat an unreadable store as empty; the seed insert below
		// will surface real trouble.
		s.logger.Warn("failed to count accounts, assuming empty",
			"component", "store",
			"error", err,
		)
	}
	if count > 0 {
		s.logger.Debug("database already contains data, skipping seed",
			"component", "store",
		)
		return nil
	}

	now := time.Now()
	admin := accountModel{
		Email:     SeedAdminEmail,
		Password:  SeedAdminPassword,
		FirstName: "Admin",
		LastName:  "System",
		Role:      string(core.RoleAdmin),
		CreatedAt: now,
	}
	association := accountModel{
		Email:     SeedAssociationEmail,
		Password:  SeedAssociationPassword,
		FirstName: "ZAKA",
		LastName:  "Association",
		Role:      string(core.RoleAssociation),
		CreatedAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&association).Error; err != nil {
			return err
		}
		imageURL := "https://picsum.photos/800/400"
		campaign := campaignModel{
			Title:         SeedCampaignTitle,
			Description:   "Support for victims of natural disasters",
			TargetAmount:  decimal.NewFromInt(10000),
			CurrentAmount: decimal.Zero,
			AssociationID: association.ID,
			ImageURL:      &imageURL,
			StartDate:     now,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.Create(&campaign).Error
	})
	if err != nil {
		return fmt.Errorf("%w: seeding demo data: %v", core.ErrStoreUnavailable, err)
	}

	s.logger.Info("seeded demo data",
		"component", "store",
		"adminId", admin.ID,
		"associationId", association.ID,
	)
	return nil
}

// Reset destroys all stored data and session-relevant records. It is
// irreversible; the caller must confirm by passing the database name.
func (s *Store) Reset(confirm string) error {
	if confirm != DatabaseName {
		return core.ErrResetNotConfirmed
	}

	s.initMu.Lock()
	defer s.initMu.Unlock()

	for _, model := range migrateModels {
		if err := s.db.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("%w: dropping tables: %v", core.ErrStoreUnavailable, err)
		}
	}
	if err := s.cache.Clear(); err != nil {
		return err
	}
	s.initialized = false
	s.logger.Warn("local database reset", "component", "store")
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// campaignLock returns the mutex serializing contribution commits for
// one campaign.
func (s *Store) campaignLock(campaignID uint) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.campaignLocks[campaignID]
	if !ok {
		lock = &sync.Mutex{}
		s.campaignLocks[campaignID] = lock
	}
	return lock
}
