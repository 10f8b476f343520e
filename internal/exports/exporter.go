// Package exports writes ranked-card snapshots to object storage after each
// rebuild, so downstream tooling can consume the full card set as JSON.
package exports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kundekort_backend/internal/cards/domain"
	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/logger"
)

// Snapshot is the exported document: the ranked cards plus the run summary.
type Snapshot struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Summary     domain.ReportSummary  `json:"summary"`
	Cards       []domain.CustomerCard `json:"cards"`
}

// Exporter uploads card snapshots to a MinIO bucket.
type Exporter struct {
	client *minio.Client
	bucket string
	repo   repository.Repository
	log    *logger.Logger
	now    func() time.Time
}

// New creates an exporter. An empty endpoint yields a disabled exporter
// whose Export is a no-op.
func New(cfg config.StorageConfig, repo repository.Repository, log *logger.Logger) (*Exporter, error) {
	e := &Exporter{
		bucket: cfg.GetMinioBucketReports(),
		repo:   repo,
		log:    log,
		now:    time.Now,
	}

	if cfg.GetMinioEndpoint() == "" {
		return e, nil
	}

	client, err := minio.New(cfg.GetMinioEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinioAccessKey(), cfg.GetMinioSecretKey(), ""),
		Secure: cfg.GetMinioUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	e.client = client
	return e, nil
}

// Export reads the current card set and uploads it as one JSON object named
// after the export time.
func (e *Exporter) Export(ctx context.Context) error {
	if e.client == nil {
		e.log.Debug("report export disabled, skipping")
		return nil
	}

	cards, err := e.repo.ListAllCards(ctx)
	if err != nil {
		return fmt.Errorf("list cards for export: %w", err)
	}

	now := e.now()
	snapshot := Snapshot{
		GeneratedAt: now,
		Summary:     domain.Summarize(cards),
		Cards:       cards,
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := e.ensureBucket(ctx); err != nil {
		return err
	}

	key := fmt.Sprintf("cards/%s.json", now.UTC().Format("20060102-150405"))
	_, err = e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload snapshot %s: %w", key, err)
	}

	e.log.Info("card snapshot exported", "bucket", e.bucket, "key", key, "cards", len(cards))
	return nil
}

func (e *Exporter) ensureBucket(ctx context.Context) error {
	exists, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", e.bucket, err)
	}
	if !exists {
		if err := e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", e.bucket, err)
		}
	}
	return nil
}
