package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	v1 "github.com/infracollect/oarchive/apis/v1"
	"github.com/infracollect/oarchive/internal/engine"
	"github.com/infracollect/oarchive/internal/engine/sinks"
)

const defaultRepackName = "extracted"

// ExtractOptions selects the extraction destination. At most one of
// ToStdout, S3 and OutputDirectory applies, in that order of precedence.
type ExtractOptions struct {
	OutputDirectory string
	ToStdout        bool
	// Stdout is where ToStdout writes (default: os.Stdout).
	Stdout io.Writer
	S3     *sinks.S3Config
	Repack *RepackOptions
}

type RepackOptions struct {
	Format      string
	Compression string
	Name        string
}

// ExtractOptionsFromConfig maps the extract section of a config file.
func ExtractOptionsFromConfig(cfg v1.Config) ExtractOptions {
	var opts ExtractOptions
	if cfg.Extract == nil {
		return opts
	}

	if dest := cfg.Extract.Destination; dest != nil {
		switch {
		case dest.Stdout != nil:
			opts.ToStdout = true
		case dest.S3 != nil:
			opts.S3 = &sinks.S3Config{
				Bucket:         dest.S3.Bucket,
				Prefix:         dest.S3.Prefix,
				Region:         dest.S3.Region,
				Endpoint:       dest.S3.Endpoint,
				ForcePathStyle: dest.S3.ForcePathStyle,
			}
			if dest.S3.Credentials != nil {
				opts.S3.AccessKeyID = dest.S3.Credentials.AccessKeyID
				opts.S3.SecretAccessKey = dest.S3.Credentials.SecretAccessKey
			}
		case dest.Filesystem != nil:
			opts.OutputDirectory = dest.Filesystem.Path
		}
	}

	if repack := cfg.Extract.Repack; repack != nil {
		opts.Repack = &RepackOptions{
			Format:      repack.Format,
			Compression: repack.Compression,
			Name:        repack.Name,
		}
	}

	return opts
}

// BuildSink creates the extraction sink.
//
// Default behavior:
//   - No destination: filesystem sink rooted at the working directory
//   - ToStdout: stream sink
//   - S3: one object per member
//
// If Repack is set, the sink is wrapped with an ArchiveSink built from registry.
func BuildSink(ctx context.Context, registry *engine.Registry, opts ExtractOptions) (engine.Sink, error) {
	sink, err := buildInnerSink(ctx, opts)
	if err != nil {
		return nil, err
	}

	if opts.Repack != nil {
		return wrapWithArchiveSink(ctx, registry, opts.Repack, sink)
	}

	return sink, nil
}

func buildInnerSink(ctx context.Context, opts ExtractOptions) (engine.Sink, error) {
	if opts.ToStdout {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return sinks.NewStreamSink(out), nil
	}

	if opts.S3 != nil {
		return sinks.NewS3Sink(ctx, *opts.S3)
	}

	path := opts.OutputDirectory
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = wd
	}

	return sinks.NewFilesystemSinkFromPath(path)
}

func wrapWithArchiveSink(ctx context.Context, registry *engine.Registry, repack *RepackOptions, inner engine.Sink) (engine.Sink, error) {
	archiver, err := registry.CreateArchiver(ctx, repack.Format, engine.ArchiverOptions{
		Compression: repack.Compression,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s archiver: %w", repack.Format, err)
	}

	name := repack.Name
	if name == "" {
		name = fmt.Sprintf("%s-%s%s", defaultRepackName, time.Now().UTC().Format(engine.ISO8601Basic), archiver.Extension())
	}

	return sinks.NewArchiveSink(inner, archiver, name), nil
}
