// Package sink is the output port for generated export files. The export
// service hands it finished bytes; where they end up (a static directory,
// memory, an S3 bucket) is a deployment choice.
package sink

import (
	"context"
	"fmt"

	"evergraze/config"
)

type Sink interface {
	// Put stores data under name, replacing any previous file of that name,
	// and returns where it was stored.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	// Check reports whether the sink can currently accept files.
	Check(ctx context.Context) error
	Driver() string
}

// Open selects a Sink from the export config.
func Open(ctx context.Context, cfg config.ExportConfig) (Sink, error) {
	switch cfg.Driver {
	case "", "fs":
		return NewFilesystem(cfg.Dir)
	case "memory":
		return NewMemory(), nil
	case "s3":
		return NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown export driver %s", cfg.Driver)
	}
}
