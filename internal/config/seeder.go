package config

import (
	"context"
	"errors"

	"learnhub/internal/adapters/persistence/models"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/core/domain"
	"learnhub/internal/pkg/password"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const demoCategoryName = "Getting Started"

// Seeder handles database seeding
type Seeder struct {
	db       *gorm.DB
	seed     SeedConfig
	log      zerolog.Logger
	hashCost int
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, seed SeedConfig, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:       db,
		seed:     seed,
		log:      log,
		hashCost: password.DefaultCost,
	}
}

// Run executes all seeders. Each seeder is idempotent.
func (s *Seeder) Run(ctx context.Context) error {
	s.log.Info().Msg("running database seeders")

	if err := s.seedAdminUser(ctx); err != nil {
		return err
	}
	if err := s.seedCatalog(ctx); err != nil {
		return err
	}

	s.log.Info().Msg("database seeding completed")
	return nil
}

// seedAdminUser creates the first admin when none exists
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	users := repositories.NewUserRepository(s.db)

	count, err := users.CountByRole(ctx, string(domain.RoleAdmin))
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.seed.AdminPassword == "" {
		s.log.Warn().Msg("admin seeder skipped: SEED_ADMIN_PASSWORD is empty")
		return nil
	}
	if !password.ValidatePassword(s.seed.AdminPassword) {
		return errors.New("SEED_ADMIN_PASSWORD is too short")
	}

	hashedPassword, err := password.HashWithCost(s.seed.AdminPassword, s.hashCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.seed.AdminName,
		Email:    s.seed.AdminEmail,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info().Str("email", admin.Email).Msg("admin user created")
	return nil
}

// seedCatalog creates a demo category and course on an empty catalog
func (s *Seeder) seedCatalog(ctx context.Context) error {
	_, total, err := repositories.NewCourseRepository(s.db).List(ctx, repositories.CourseFilter{}, 0, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := repositories.NewCategoryRepository(tx)

		category, err := categories.GetByName(ctx, demoCategoryName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = &models.Category{
				Name:        demoCategoryName,
				Description: "Introductory courses",
			}
			err = categories.Create(ctx, category)
		}
		if err != nil {
			return err
		}

		course := &models.Course{
			CategoryID:  &category.ID,
			Title:       "Welcome to learnhub",
			Description: "A short tour of the platform.",
			Price:       0,
			MaxSeats:    25,
			Status:      string(domain.CourseStatusPublished),
		}
		if err := repositories.NewCourseRepository(tx).Create(ctx, course); err != nil {
			return err
		}

		s.log.Info().Uint("course_id", course.ID).Msg("demo course created")
		return nil
	})
}
