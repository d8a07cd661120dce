// Seed command for loading the catalog courses and the manual promo codes.
//
// Refuses to run in production unless --force is given. Re-running is safe:
// courses are upserted and existing promo codes are left untouched.
//
// Usage:
//
//	go run ./cmd/seed --confirm
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/training-marketplace/internal/catalog"
	"github.com/fairyhunter13/training-marketplace/internal/config"
	"github.com/fairyhunter13/training-marketplace/internal/model"
	"github.com/fairyhunter13/training-marketplace/internal/repository"
	"github.com/fairyhunter13/training-marketplace/pkg/database"
)

// manualPromo is a back-office code created outside the lead flow.
type manualPromo struct {
	code     string
	percent  int
	validFor time.Duration
	courseID string
}

var manualPromos = []manualPromo{
	{code: "SAVE15", percent: 15, validFor: 365 * 24 * time.Hour},
	{code: "K8SLAUNCH", percent: 20, validFor: 90 * 24 * time.Hour, courseID: "kubernetes-fundamentals"},
}

func main() {
	confirm := flag.Bool("confirm", false, "Confirm seeding (required)")
	force := flag.Bool("force", false, "Allow seeding when APP_ENV=production")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	if !*confirm {
		log.Fatal().Msg("--confirm flag is required to run the seeder")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.App.IsProduction() && !*force {
		log.Fatal().Msg("refusing to seed a production database without --force")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	courses, err := catalog.NewStaticCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog")
	}

	if err := seed(ctx, pool, courses.Courses(), time.Now().UTC()); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding complete")
}

// seed writes everything in one transaction so a partial run leaves no trace.
func seed(ctx context.Context, db database.TxBeginner, courses []model.Course, now time.Time) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error().Err(rbErr).Msg("rollback failed")
			}
		}
	}()

	courseRepo := repository.NewCourseRepository(tx)
	for i := range courses {
		if err = courseRepo.Upsert(ctx, &courses[i]); err != nil {
			return err
		}
		log.Info().Str("course_id", courses[i].ID).Str("price", courses[i].Price.StringFixed(2)).Msg("course upserted")
	}

	promoRepo := repository.NewPromoRepository(tx)
	for _, p := range manualPromos {
		existing, getErr := promoRepo.GetByCode(ctx, p.code)
		if getErr != nil {
			return getErr
		}
		if existing != nil {
			log.Info().Str("promo_code", p.code).Msg("promo code already present, skipped")
			continue
		}

		promo := &model.PromoCode{
			Code:            p.code,
			DiscountPercent: p.percent,
			ValidUntil:      now.Add(p.validFor).Truncate(24 * time.Hour),
			IsActive:        true,
		}
		if p.courseID != "" {
			courseID := p.courseID
			promo.CourseID = &courseID
		}
		if err = promoRepo.Insert(ctx, promo); err != nil {
			return err
		}
		log.Info().Str("promo_code", p.code).Int("discount_percent", p.percent).Msg("promo code created")
	}

	return tx.Commit(ctx)
}
