package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/fala-hotels/fala-api/internal/config"
	"github.com/fala-hotels/fala-api/internal/domain/hotel"
	"github.com/fala-hotels/fala-api/internal/pkg/database"
	"github.com/fala-hotels/fala-api/internal/pkg/imaging"
	"github.com/fala-hotels/fala-api/internal/pkg/logger"
	"github.com/fala-hotels/fala-api/internal/pkg/storage"
)

const (
	pollInterval = 5 * time.Second
	maxAttempts  = 3
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().Msg("Starting image-worker")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	r2, err := storage.NewR2Storage(storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create R2 storage client")
	}

	hotels := hotel.NewRepository(db)
	processor := imaging.NewProcessor(imaging.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis pub/sub wake-up; polling still runs as the main mechanism
	wake := make(chan struct{}, 1)
	if rdb != nil {
		go subscribeWakeups(ctx, rdb, wake)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info().Msg("Shutdown signal received")
		cancel()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	lastIdleLog := time.Time{}
	idleLogEvery := 1 * time.Minute

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("image-worker stopped")
			return
		case <-wake:
			// immediate poll
		case <-ticker.C:
		}

		img, ok, err := hotels.ClaimNextImage(ctx, maxAttempts)
		if err != nil {
			log.Error().Err(err).Msg("DB error while claiming image")
			continue
		}
		if !ok {
			now := time.Now()
			if lastIdleLog.IsZero() || now.Sub(lastIdleLog) >= idleLogEvery {
				log.Info().Msg("Idle: no unprocessed hotel images")
				lastIdleLog = now
			}
			continue
		}

		start := time.Now()
		log.Info().
			Str("image_id", img.ID.String()).
			Str("key", img.Key).
			Msg("Processing hotel image")

		width, height, err := processOne(ctx, r2, processor, img.Key)
		if err != nil {
			log.Error().Err(err).Str("image_id", img.ID.String()).Msg("Processing failed")
			if err2 := hotels.MarkImageFailed(ctx, img.ID, err.Error()); err2 != nil {
				log.Error().Err(err2).Str("image_id", img.ID.String()).Msg("Failed to update status=failed")
			}
			continue
		}

		if err := hotels.MarkImageDone(ctx, img.ID, width, height); err != nil {
			log.Error().Err(err).Str("image_id", img.ID.String()).Msg("Failed to update status=done")
			continue
		}

		log.Info().
			Str("image_id", img.ID.String()).
			Dur("took", time.Since(start)).
			Int("width", width).
			Int("height", height).
			Msg("Processing done")
	}
}

func processOne(ctx context.Context, st storage.ImageStorage, processor *imaging.Processor, originalKey string) (int, int, error) {
	rc, err := st.Get(ctx, originalKey)
	if err != nil {
		return 0, 0, err
	}
	defer rc.Close()

	result, err := processor.Process(rc, originalKey)
	if err != nil {
		return 0, 0, err
	}

	// Overwrite the original with the web-optimized JPEG
	if err := st.Put(ctx, originalKey, bytes.NewReader(result.Optimized), "image/jpeg"); err != nil {
		return 0, 0, err
	}

	for _, thumb := range result.Thumbs {
		if err := st.Put(ctx, thumb.Key, bytes.NewReader(thumb.Data), "image/jpeg"); err != nil {
			return 0, 0, err
		}
	}

	return result.Width, result.Height, nil
}

func subscribeWakeups(ctx context.Context, rdb *redis.Client, wake chan<- struct{}) {
	sub := rdb.Subscribe(ctx, hotel.WakeupChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Channel():
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}
