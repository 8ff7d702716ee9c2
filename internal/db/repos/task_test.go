package repos

import (
	"github.com/logbookhq/logbook/internal/db/models"
)

func (s *RepositoryTestSuite) TestTaskSaveDefaultsStatus() {
	task := &models.Task{Title: "Design"}
	s.Require().NoError(s.tasks.Save(s.ctx, task))

	stored, err := s.tasks.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusPending, stored.Status)
}

func (s *RepositoryTestSuite) TestTaskSaveRejectsEmptyTitle() {
	s.Error(s.tasks.Save(s.ctx, &models.Task{}))
}

func (s *RepositoryTestSuite) TestTaskFindByTitle() {
	s.Require().NoError(s.tasks.Save(s.ctx, &models.Task{Title: "Design"}))

	task, err := s.tasks.FindByTitle(s.ctx, "DESIGN")
	s.Require().NoError(err)
	s.Require().NotNil(task)
	s.Equal("Design", task.Title)

	missing, err := s.tasks.FindByTitle(s.ctx, "Ghost")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositoryTestSuite) TestTaskListByProject() {
	project := &models.Project{Name: "Alpha"}
	s.Require().NoError(s.projects.Save(s.ctx, project))

	s.Require().NoError(s.tasks.Save(s.ctx, &models.Task{Title: "Owned", ProjectID: &project.ID}))
	s.Require().NoError(s.tasks.Save(s.ctx, &models.Task{Title: "Loose"}))

	owned, err := s.tasks.ListByProject(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.Equal("Owned", owned[0].Title)

	all, err := s.tasks.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *RepositoryTestSuite) TestTaskDeleteByProject() {
	project := &models.Project{Name: "Alpha"}
	s.Require().NoError(s.projects.Save(s.ctx, project))

	s.Require().NoError(s.tasks.Save(s.ctx, &models.Task{Title: "Owned", ProjectID: &project.ID}))
	s.Require().NoError(s.tasks.Save(s.ctx, &models.Task{Title: "Loose"}))

	s.Require().NoError(s.tasks.DeleteByProject(s.ctx, project.ID))

	all, err := s.tasks.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("Loose", all[0].Title)
}
