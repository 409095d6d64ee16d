package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/interview_scheduler/internal/config"
	"github.com/Freeeeeet/interview_scheduler/internal/repository"
	"github.com/Freeeeeet/interview_scheduler/internal/repository/memory"
	"github.com/Freeeeeet/interview_scheduler/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Storage набор хранилищ выбранного драйвера
type Storage struct {
	Candidates service.CandidateStore
	Employees  service.EmployeeStore
	Slots      service.SlotStore

	// Pool nil для драйвера memory
	Pool *pgxpool.Pool
}

// NewStorage открывает хранилище по cfg.StorageDriver; для postgres при необходимости накатывает миграции
func NewStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &Storage{
			Candidates: store.Candidates(),
			Employees:  store.Employees(),
			Slots:      store.Slots(),
		}, nil
	}

	pool, err := OpenPool(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to database")

	if cfg.AutoMigrate {
		if err := migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &Storage{
		Candidates: repository.NewCandidateRepository(pool),
		Employees:  repository.NewEmployeeRepository(pool),
		Slots:      repository.NewSlotRepository(pool),
		Pool:       pool,
	}, nil
}

// OpenPool создаёт пул и проверяет соединение
func OpenPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.Pool == nil {
		return nil
	}
	return s.Pool.Ping(ctx)
}

func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}
