package repos

import (
	"github.com/logbookhq/logbook/internal/db/models"
)

func (s *RepositoryTestSuite) TestProjectSaveAndGet() {
	desc := "platform rewrite"
	project := &models.Project{Name: "Alpha", Description: &desc}
	s.Require().NoError(s.projects.Save(s.ctx, project))
	s.Require().NotZero(project.ID)

	stored, err := s.projects.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Equal("Alpha", stored.Name)
	s.Equal(desc, *stored.Description)
}

func (s *RepositoryTestSuite) TestProjectSaveUpdatesInPlace() {
	project := &models.Project{Name: "Alpha"}
	s.Require().NoError(s.projects.Save(s.ctx, project))

	project.Name = "Alpha v2"
	s.Require().NoError(s.projects.Save(s.ctx, project))

	projects, err := s.projects.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(projects, 1)
	s.Equal("Alpha v2", projects[0].Name)
}

func (s *RepositoryTestSuite) TestProjectListOrdersByID() {
	for _, name := range []string{"Gamma", "Alpha", "Beta"} {
		s.Require().NoError(s.projects.Save(s.ctx, &models.Project{Name: name}))
	}

	projects, err := s.projects.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(projects, 3)
	s.Equal("Gamma", projects[0].Name)
	s.Equal("Beta", projects[2].Name)
}

func (s *RepositoryTestSuite) TestProjectFindByName() {
	s.Require().NoError(s.projects.Save(s.ctx, &models.Project{Name: "Alpha"}))

	project, err := s.projects.FindByName(s.ctx, "aLpHa")
	s.Require().NoError(err)
	s.Require().NotNil(project)
	s.Equal("Alpha", project.Name)

	missing, err := s.projects.FindByName(s.ctx, "Ghost")
	s.Require().NoError(err)
	s.Nil(missing, "a miss is nil, not an error")
}

func (s *RepositoryTestSuite) TestProjectDelete() {
	project := &models.Project{Name: "Alpha"}
	s.Require().NoError(s.projects.Save(s.ctx, project))
	s.Require().NoError(s.projects.Delete(s.ctx, project.ID))

	_, err := s.projects.Get(s.ctx, project.ID)
	s.Error(err)
}

func (s *RepositoryTestSuite) TestProjectStoresLocalTimes() {
	start, err := models.ParseLocalTime("2026-09-01T09:00:00")
	s.Require().NoError(err)

	project := &models.Project{Name: "Alpha", StartDate: &start}
	s.Require().NoError(s.projects.Save(s.ctx, project))

	stored, err := s.projects.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.StartDate)
	s.True(stored.StartDate.Equal(start.Time))
	s.Nil(stored.EndDate)
}
