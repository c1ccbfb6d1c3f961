// Package archive compresses saved transcripts and copies them to a sink: a
// local directory or an Azure Blob Storage container.
package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/transcript"
	"golang.org/x/sync/errgroup"
)

// Extension is appended to a transcript name to form its archive object name.
const Extension = ".zst"

// DefaultWorkers bounds concurrent uploads when Archiver.Workers is unset.
const DefaultWorkers = 4

// Sink stores archived objects.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	// Location describes where objects go, for log lines.
	Location() string
}

// Result reports what happened to one transcript.
type Result struct {
	Name            string `json:"name"`
	Object          string `json:"object,omitempty"`
	SizeBytes       int64  `json:"size_bytes"`
	CompressedBytes int    `json:"compressed_bytes"`
	SHA256          string `json:"sha256,omitempty"`
	// Skipped holds the reason a transcript was not archived.
	Skipped string `json:"skipped,omitempty"`
}

// Archiver fans transcripts out to a Sink.
type Archiver struct {
	Sink    Sink
	Workers int
}

// Archive compresses every transcript in runs and stores it in the sink.
// Transcripts that no longer load are skipped and reported, not fatal. The
// first sink error cancels the remaining uploads. Results keep the order of
// runs.
func (a *Archiver) Archive(ctx context.Context, runs []models.RunInfo) ([]Result, error) {
	workers := a.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]Result, len(runs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, info := range runs {
		g.Go(func() error {
			res, err := a.archiveOne(ctx, info)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (a *Archiver) archiveOne(ctx context.Context, info models.RunInfo) (Result, error) {
	res := Result{Name: info.Filename, SizeBytes: info.SizeBytes}

	if _, err := transcript.Load(info.FilePath); err != nil {
		slog.Warn("Skipping transcript", "name", info.Filename, "error", err)
		res.Skipped = err.Error()
		return res, nil
	}

	raw, err := os.ReadFile(info.FilePath)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", info.Filename, err)
	}

	data := Compress(raw)

	sum := sha256.Sum256(raw)
	res.Object = info.Filename + Extension
	res.CompressedBytes = len(data)
	res.SHA256 = hex.EncodeToString(sum[:])

	if err := a.Sink.Put(ctx, res.Object, data); err != nil {
		return res, fmt.Errorf("storing %s in %s: %w", res.Object, a.Sink.Location(), err)
	}
	slog.Debug("Archived transcript", "name", info.Filename, "object", res.Object, "bytes", len(raw), "compressed", len(data))
	return res, nil
}

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	decoder, _ = zstd.NewReader(nil)
)

// Compress encodes data as a single zstd frame.
func Compress(data []byte) []byte {
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}
