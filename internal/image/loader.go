// Package image loads source images for colour extraction from local files
// and HTTP(S) URLs.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp"

	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// DefaultMaxPixels bounds width*height of a decoded image when no limit is
// configured. Images are rejected from their header before any pixel
// buffer is allocated.
const DefaultMaxPixels = 50_000_000

// ErrTooManyPixels is returned for images whose header exceeds the pixel limit.
var ErrTooManyPixels = errors.New("image exceeds pixel limit")

// Extensions lists the file extensions of the registered decoders.
var Extensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Loader resolves src to a decoded image.
type Loader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// IsRemote reports whether src is an HTTP(S) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// FileLoader reads images from the local filesystem.
type FileLoader struct {
	// MaxPixels defaults to DefaultMaxPixels.
	MaxPixels int64
}

func NewFileLoader() *FileLoader {
	return &FileLoader{MaxPixels: DefaultMaxPixels}
}

// Load decodes the image at path.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	f, err := openImageFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f, l.MaxPixels)
}

// SmartLoaderOptions configures a SmartLoader.
type SmartLoaderOptions struct {
	Fetch httputil.FetchOptions

	// CacheDir keeps downloaded images on disk when set.
	CacheDir string

	// AllowFiles permits local paths. The HTTP server leaves this off.
	AllowFiles bool

	// MaxPixels defaults to DefaultMaxPixels.
	MaxPixels int64

	Logger hclog.Logger
}

// SmartLoader dispatches to the filesystem or the network depending on src.
type SmartLoader struct {
	files  *FileLoader
	opts   SmartLoaderOptions
	logger hclog.Logger
}

// NewSmartLoader accepts both paths and URLs and does not cache.
func NewSmartLoader() *SmartLoader {
	return NewSmartLoaderWithOptions(SmartLoaderOptions{AllowFiles: true})
}

func NewSmartLoaderWithOptions(opts SmartLoaderOptions) *SmartLoader {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SmartLoader{
		files:  &FileLoader{MaxPixels: opts.MaxPixels},
		opts:   opts,
		logger: logger.Named("loader"),
	}
}

func (l *SmartLoader) Load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case IsRemote(src) && l.opts.CacheDir != "":
		path, err := imagecache.DownloadAndCache(ctx, src, imagecache.CacheOptions{
			CacheDir: l.opts.CacheDir,
			Fetch:    l.opts.Fetch,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		l.logger.Debug("using cached image", "url", src, "path", path)
		return l.files.Load(ctx, path)

	case IsRemote(src):
		l.logger.Debug("fetching image", "url", src)
		data, err := httputil.Fetch(ctx, src, l.opts.Fetch)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return decode(bytes.NewReader(data), l.opts.MaxPixels)

	case l.opts.AllowFiles:
		return l.files.Load(ctx, src)

	default:
		return nil, fmt.Errorf("local image paths are not allowed: %s", src)
	}
}

// ValidateImagePath checks src before any work is done. URLs are only
// checked for shape; files must exist and carry a decodable image header.
func ValidateImagePath(src string) error {
	if IsRemote(src) {
		return nil
	}

	f, err := openImageFile(src)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		ext := strings.ToLower(filepath.Ext(src))
		if !slices.Contains(Extensions, ext) {
			return fmt.Errorf("unsupported image format %q (supported: %s): %w",
				ext, strings.Join(Extensions, ", "), err)
		}
		return fmt.Errorf("invalid %s image: %w", strings.TrimPrefix(ext, "."), err)
	}
	return nil
}

func openImageFile(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.New("image path cannot be empty")
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("image file not found: %s", path)
	case err != nil:
		return nil, fmt.Errorf("failed to access image path: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path) // #nosec G304 -- caller-supplied image path
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return f, nil
}

// decode reads the image header first and refuses images larger than
// maxPixels, then decodes the full image from the same stream.
func decode(r io.Reader, maxPixels int64) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	var header bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid %s image dimensions %dx%d", format, cfg.Width, cfg.Height)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxPixels {
		return nil, fmt.Errorf("%w: %s image is %dx%d (%d pixels, limit %d)",
			ErrTooManyPixels, format, cfg.Width, cfg.Height, pixels, maxPixels)
	}

	img, format, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		if format == "" {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return img, nil
}
