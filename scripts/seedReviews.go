package main

import (
	"context"
	"log"
	"time"

	"sellinginfinity/config"
	"sellinginfinity/database"
	"sellinginfinity/models"
	"sellinginfinity/repository"
	"sellinginfinity/utils"

	"go.uber.org/zap"
)

var sampleReviews = []models.Review{
	{
		Name:       "Sarah Johnson",
		Email:      "sarah.j@email.com",
		Rating:     5,
		ReviewText: "This training completely transformed my sales approach. I went from struggling to close deals to consistently exceeding my targets. The techniques are practical and immediately applicable. Highly recommend to anyone serious about improving their sales skills!",
	},
	{
		Name:       "Michael Chen",
		Email:      "m.chen@email.com",
		Rating:     5,
		ReviewText: "After taking this course, my sales increased by 150% in just 3 months. The ROI-focused approach and proven methodologies are exactly what I needed. The support team is also fantastic!",
	},
	{
		Name:       "Emily Rodriguez",
		Email:      "emily.r@email.com",
		Rating:     5,
		ReviewText: "I was skeptical at first, but this training delivered beyond my expectations. The step-by-step approach made complex sales strategies easy to understand and implement. My confidence and results have improved dramatically.",
	},
}

// Seeds the sample approved testimonials shown on a fresh install.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := utils.NewLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	store := repository.NewReviewRepository(db)
	ctx := context.Background()
	inserted := 0

	for i := range sampleReviews {
		r := sampleReviews[i]
		existing, err := store.Find(ctx, repository.ReviewFilter{Name: r.Name, ReviewText: r.ReviewText})
		if err != nil {
			logger.Fatal("lookup failed", zap.String("name", r.Name), zap.Error(err))
		}
		if existing != nil {
			logger.Info("sample review already present", zap.String("name", r.Name))
			continue
		}

		now := time.Now().UTC()
		r.Status = models.ReviewStatusApproved
		r.CreatedAt = now
		r.UpdatedAt = now
		r.ApprovedAt = &now
		if _, err := store.Insert(ctx, &r); err != nil {
			logger.Fatal("insert failed", zap.String("name", r.Name), zap.Error(err))
		}
		inserted++
	}

	logger.Info("seed complete", zap.Int("inserted", inserted), zap.Int("total", len(sampleReviews)))
}
