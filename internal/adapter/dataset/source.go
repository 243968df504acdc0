// Package dataset fetches the static lexicon dataset from a local file,
// an HTTP endpoint, S3 or MinIO, and decodes it into lexicon entries.
//
// The location scheme picks the transport and the key suffix picks the
// decompressor (.gz, .zst, .lz4, or none).
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/config"
	"github.com/hizkiajonathanbudiana/Learning-Chinese-App/internal/domain"
)

// opener returns the raw (possibly compressed) dataset stream.
type opener interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Source is a lexicon dataset location bound to its transport.
type Source struct {
	log      *slog.Logger
	location string
	name     string // object name, used for suffix-based decompression
	opener   opener
}

// New resolves cfg.Source into a Source. Remote clients are built here so
// configuration mistakes surface at startup rather than on first lookup.
func New(ctx context.Context, cfg config.LexiconConfig, logger *slog.Logger) (*Source, error) {
	loc := strings.TrimSpace(cfg.Source)
	if loc == "" {
		return nil, fmt.Errorf("dataset: empty source")
	}

	u, err := url.Parse(loc)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 { // len 1: windows drive letter
		return newSource(logger, loc, path.Base(loc), fileOpener{path: loc}), nil
	}

	switch u.Scheme {
	case "file":
		p := u.Path
		if u.Host != "" {
			p = u.Host + u.Path
		}
		return newSource(logger, loc, path.Base(p), fileOpener{path: p}), nil

	case "http", "https":
		return newSource(logger, loc, path.Base(u.Path), httpOpener{
			client: defaultHTTPClient(cfg.LoadTimeout),
			url:    loc,
		}), nil

	case "s3":
		bucket, key, err := bucketKey(u)
		if err != nil {
			return nil, err
		}
		client, err := newS3Client(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("dataset: s3 client: %w", err)
		}
		return newSource(logger, loc, path.Base(key), s3Opener{client: client, bucket: bucket, key: key}), nil

	case "minio":
		bucket, key, err := bucketKey(u)
		if err != nil {
			return nil, err
		}
		client, err := newMinioClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("dataset: minio client: %w", err)
		}
		return newSource(logger, loc, path.Base(key), minioOpener{client: client, bucket: bucket, key: key}), nil

	default:
		return nil, fmt.Errorf("dataset: unsupported scheme %q", u.Scheme)
	}
}

func newSource(logger *slog.Logger, location, name string, o opener) *Source {
	return &Source{
		log:      logger.With("component", "dataset"),
		location: location,
		name:     name,
		opener:   o,
	}
}

// Location returns the configured dataset URL or path.
func (s *Source) Location() string { return s.location }

// Fetch downloads, decompresses and decodes the whole dataset. Every
// failure wraps domain.ErrFetchFailed.
func (s *Source) Fetch(ctx context.Context) ([]domain.LexiconEntry, error) {
	start := time.Now()

	raw, err := s.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrFetchFailed, s.location, err)
	}
	defer raw.Close()

	r, err := decompress(raw, s.name)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %s: %w", domain.ErrFetchFailed, s.location, err)
	}
	defer r.Close()

	entries, skipped, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrFetchFailed, s.location, err)
	}

	s.log.Info("lexicon dataset fetched",
		slog.String("source", s.location),
		slog.Int("entries", len(entries)),
		slog.Int("skipped", skipped),
		slog.Duration("duration", time.Since(start)),
	)
	return entries, nil
}

func bucketKey(u *url.URL) (string, string, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("dataset: %s location needs bucket and key: %q", u.Scheme, u.String())
	}
	return bucket, key, nil
}

// record is one element of the dataset array. Glosses come from
// "definitions"; older exports carry them in "english" instead.
type record struct {
	Simplified  string    `json:"simplified"`
	Traditional string    `json:"traditional"`
	Pinyin      string    `json:"pinyin"`
	Definitions []string  `json:"definitions"`
	English     glossList `json:"english"`
}

// glossList accepts a JSON array of strings or a CEDICT "/a/b/" string.
type glossList []string

func (g *glossList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*g = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("english: want string or array: %w", err)
	}
	var out []string
	for _, part := range strings.Split(s, "/") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*g = out
	return nil
}

// decode streams the top-level array so the raw document is never held in
// memory twice. Records without any key are skipped and counted.
func decode(r io.Reader) ([]domain.LexiconEntry, int, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, 0, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, 0, fmt.Errorf("expected top-level array, got %v", tok)
	}

	var (
		entries []domain.LexiconEntry
		skipped int
	)
	for dec.More() {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			return nil, 0, fmt.Errorf("record %d: %w", len(entries)+skipped, err)
		}

		entry := domain.LexiconEntry{
			Simplified:  strings.TrimSpace(rec.Simplified),
			Traditional: strings.TrimSpace(rec.Traditional),
			Pinyin:      strings.TrimSpace(rec.Pinyin),
			Glosses:     rec.Definitions,
		}
		if len(entry.Glosses) == 0 {
			entry.Glosses = rec.English
		}
		if len(entry.Keys()) == 0 {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if _, err := dec.Token(); err != nil {
		return nil, 0, fmt.Errorf("closing bracket: %w", err)
	}
	return entries, skipped, nil
}
