package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/quadrago-discovery/internal/domain/repository"
	"github.com/quadrago-discovery/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewCatalogRepositoryForTest creates a catalog repository with test database and logger
func NewCatalogRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CatalogRepository {
	return postgres.NewCatalogRepository(NewDBForTest(db, logger))
}

// NewAvailabilityRepositoryForTest creates an availability repository with test database and logger
func NewAvailabilityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.AvailabilityRepository {
	return postgres.NewAvailabilityRepository(NewDBForTest(db, logger))
}
