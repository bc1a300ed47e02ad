package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-jobboard-api/config"
	"github.com/oksasatya/go-jobboard-api/internal/domain/apperr"
	"github.com/oksasatya/go-jobboard-api/internal/domain/entity"
	repo "github.com/oksasatya/go-jobboard-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-jobboard-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-jobboard-api/pkg/helpers"
)

type seedUser struct {
	email, password, name, bio, location, phone string
	role                                        entity.Role
}

var users = []seedUser{
	{"admin@jobexecutive.com", "admin123", "System Administrator", "System administrator for Job Executive platform", "New York, USA", "", entity.RoleAdmin},
	{"tech@google.com", "employer123", "Google HR", "Hiring manager at Google", "Mountain View, CA", "+15550101", entity.RoleEmployer},
	{"careers@microsoft.com", "employer123", "Microsoft Recruiter", "Talent acquisition specialist at Microsoft", "Redmond, WA", "+15550102", entity.RoleEmployer},
	{"john.doe@email.com", "seeker123", "John Doe", "Full-stack developer with 5 years of experience in React and Go", "San Francisco, CA", "+15550103", entity.RoleSeeker},
	{"sarah.smith@email.com", "seeker123", "Sarah Smith", "Frontend developer specializing in modern JavaScript frameworks", "Austin, TX", "+15550104", entity.RoleSeeker},
}

// jobs are keyed by the employer's email.
var jobs = map[string][]entity.Job{
	"tech@google.com": {
		{
			Title:        "Senior Full Stack Developer",
			Description:  "We are looking for an experienced Full Stack Developer to join our dynamic team and maintain web applications using modern technologies.",
			Company:      "Google",
			Salary:       "$120,000 - $150,000",
			Location:     "Mountain View, CA",
			Type:         entity.JobFullTime,
			Category:     "Software Development",
			Experience:   "5+ years",
			Requirements: "5+ years of experience with React, Go and PostgreSQL. Strong understanding of REST APIs.",
			Benefits:     "Health insurance, stock options, flexible work hours",
		},
		{
			Title:        "Backend Engineer",
			Description:  "Looking for a backend engineer to develop scalable APIs and services on cloud platforms.",
			Company:      "Google",
			Salary:       "$110,000 - $140,000",
			Location:     "Remote",
			Type:         entity.JobRemote,
			Category:     "Backend Development",
			Experience:   "4+ years",
			Requirements: "Strong Go skills, experience with PostgreSQL, Docker and Kubernetes",
			Benefits:     "Remote work, learning budget, health benefits",
		},
		{
			Title:        "Junior Software Developer",
			Description:  "Great opportunity for a junior developer to grow their skills with mentorship and rapid advancement.",
			Company:      "Google",
			Salary:       "$70,000 - $90,000",
			Location:     "New York, NY",
			Type:         entity.JobInternship,
			Category:     "Software Development",
			Experience:   "0-1 years",
			Requirements: "Computer science degree or bootcamp, basic knowledge of one programming language",
		},
	},
	"careers@microsoft.com": {
		{
			Title:        "Frontend React Developer",
			Description:  "Join our frontend team to build user experiences using React, TypeScript, and modern CSS.",
			Company:      "Microsoft",
			Salary:       "$90,000 - $120,000",
			Location:     "Redmond, WA",
			Type:         entity.JobFullTime,
			Category:     "Frontend Development",
			Experience:   "3+ years",
			Requirements: "3+ years of React experience, proficiency in TypeScript",
			Benefits:     "Competitive salary, comprehensive benefits",
		},
		{
			Title:        "DevOps Engineer",
			Description:  "Seeking a DevOps engineer to improve our CI/CD pipelines and keep our infrastructure highly available.",
			Company:      "Microsoft",
			Salary:       "$100,000 - $130,000",
			Location:     "Seattle, WA",
			Type:         entity.JobHybrid,
			Category:     "DevOps",
			Experience:   "4+ years",
			Requirements: "Experience with GCP or AWS, Kubernetes, Docker and infrastructure as code",
			Benefits:     "Hybrid work model, stock options",
		},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	s := &seeder{
		users: pginfra.NewUserRepository(pool),
		jobs:  pginfra.NewJobRepository(pool),
		apps:  pginfra.NewApplicationRepository(pool),
		cost:  cfg.BcryptCost,
		log:   logger,
	}
	if err := s.run(ctx); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}
	logger.Info("seeding completed")
}

type seeder struct {
	users repo.UserRepository
	jobs  repo.JobRepository
	apps  repo.ApplicationRepository
	cost  int
	log   *logrus.Logger
}

// run is safe to repeat: existing users are kept, employers that already
// have postings get no new ones, and duplicate applications are skipped.
func (s *seeder) run(ctx context.Context) error {
	ids := map[string]string{}
	for _, su := range users {
		id, err := s.ensureUser(ctx, su)
		if err != nil {
			return err
		}
		ids[su.email] = id
	}

	var posted []entity.Job
	for email, list := range jobs {
		created, err := s.ensureJobs(ctx, ids[email], list)
		if err != nil {
			return err
		}
		posted = append(posted, created...)
	}

	seekers := []string{ids["john.doe@email.com"], ids["sarah.smith@email.com"]}
	for i, j := range posted {
		seeker := seekers[i%len(seekers)]
		a := &entity.Application{JobID: j.ID, SeekerID: seeker, CoverLetter: entity.DefaultCoverLetter(j.Title, j.Company)}
		if err := s.apps.Create(ctx, a); err != nil && !errors.Is(err, apperr.ErrConflict) {
			return err
		}
	}
	return nil
}

func (s *seeder) ensureUser(ctx context.Context, su seedUser) (string, error) {
	existing, err := s.users.GetByEmail(ctx, su.email)
	if err == nil {
		s.log.WithField("email", su.email).Info("user exists")
		return existing.ID, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}
	hash, err := helpers.HashPassword(su.password, s.cost)
	if err != nil {
		return "", err
	}
	u := &entity.User{
		Email:      su.email,
		Password:   hash,
		Name:       su.name,
		Role:       su.role,
		Bio:        su.bio,
		Location:   su.location,
		Phone:      su.phone,
		IsVerified: true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"email": su.email, "role": su.role, "password": su.password}).Info("user seeded")
	return u.ID, nil
}

func (s *seeder) ensureJobs(ctx context.Context, employerID string, list []entity.Job) ([]entity.Job, error) {
	_, total, err := s.jobs.List(ctx, repo.JobFilter{EmployerID: employerID, Page: repo.Page{Limit: 1}})
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, nil
	}
	out := make([]entity.Job, 0, len(list))
	for _, j := range list {
		j.EmployerID = employerID
		j.IsActive = true
		if err := s.jobs.Create(ctx, &j); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	s.log.WithFields(logrus.Fields{"employer_id": employerID, "jobs": len(out)}).Info("jobs seeded")
	return out, nil
}
