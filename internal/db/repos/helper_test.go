package repos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/logbookhq/logbook/internal/db/models"
)

type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	projects *ProjectRepository
	tasks    *TaskRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Project{}, &models.Task{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	require.NoError(s.T(), db.Exec("DELETE FROM tasks").Error)
	require.NoError(s.T(), db.Exec("DELETE FROM projects").Error)

	s.db = db
	s.ctx = context.Background()
	s.projects = NewProjectRepository(db)
	s.tasks = NewTaskRepository(db)
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	require.NoError(s.T(), err)
	require.NoError(s.T(), sqlDB.Close())
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
