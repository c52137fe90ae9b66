package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"vidtube/internal/middleware"
	"vidtube/internal/observability"
	"vidtube/internal/storage"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Kinds of stored media, used as key prefixes and metric labels.
const (
	KindVideo     = "videos"
	KindThumbnail = "thumbnails"
	KindAvatar    = "avatars"
	KindCover     = "covers"
)

var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".m4v":  "video/x-m4v",
}

// ErrUnsupportedVideo is returned for uploads that are not a known video container.
var ErrUnsupportedVideo = errors.New("unsupported video format")

// Upload is the result of storing one media file.
type Upload struct {
	Key      string
	URL      string
	Size     int64
	Duration float64
}

// Uploader stores media files through a storage.Store.
type Uploader struct {
	store   storage.Store
	prober  DurationProber
	tempDir string
}

func NewUploader(store storage.Store, prober DurationProber, tempDir string) *Uploader {
	if prober == nil {
		prober = NoopProber{}
	}
	return &Uploader{store: store, prober: prober, tempDir: tempDir}
}

func objectKey(kind string, ownerID uuid.UUID, ext string) string {
	return kind + "/" + ownerID.String() + "/" + uuid.NewString() + ext
}

// UploadVideo spools f to a temp file, probes its duration and stores it.
// A failed probe is logged and leaves Duration at zero.
func (u *Uploader) UploadVideo(ctx context.Context, ownerID uuid.UUID, f *File) (upload *Upload, err error) {
	ctx, end := observability.StartSpan(ctx, "media.UploadVideo")
	defer end(&err)
	defer func() { recordUpload(KindVideo, upload, err) }()

	contentType, ok := videoExtensions[f.Ext()]
	if !ok && !strings.HasPrefix(f.ContentType, "video/") {
		return nil, ErrUnsupportedVideo
	}
	if contentType == "" {
		contentType = f.ContentType
	}

	src, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open video upload")
	}
	defer src.Close()

	tmp, err := os.CreateTemp(u.tempDir, "vidtube-video-*"+f.Ext())
	if err != nil {
		return nil, errors.Wrap(err, "create spool file")
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	size, err := io.Copy(tmp, src)
	if err != nil {
		return nil, errors.Wrap(err, "spool video upload")
	}
	if size == 0 {
		return nil, errors.New("video upload is empty")
	}

	duration, perr := u.prober.Duration(ctx, tmp.Name())
	if perr != nil {
		middleware.Logger.WarnContext(ctx, "video duration probe failed",
			slog.String("file", f.Name), slog.String("error", perr.Error()))
		duration = 0
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "rewind spool file")
	}

	obj, err := u.store.Put(ctx, objectKey(KindVideo, ownerID, f.Ext()), tmp, size, contentType)
	if err != nil {
		return nil, err
	}
	if obj.URL == "" {
		return nil, errors.New("storage returned no URL for video")
	}

	return &Upload{Key: obj.Key, URL: obj.URL, Size: size, Duration: duration}, nil
}

// UploadImage normalises f to WebP within the bounds for kind and stores it.
func (u *Uploader) UploadImage(ctx context.Context, kind string, ownerID uuid.UUID, f *File) (upload *Upload, err error) {
	ctx, end := observability.StartSpan(ctx, "media.UploadImage")
	defer end(&err)
	defer func() { recordUpload(kind, upload, err) }()

	maxW, maxH := ThumbnailMaxWidth, ThumbnailMaxHeight
	if kind == KindAvatar {
		maxW, maxH = AvatarMaxSize, AvatarMaxSize
	}

	src, err := f.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open image upload")
	}
	defer src.Close()

	encoded, err := ToWebP(src, maxW, maxH)
	if err != nil {
		return nil, err
	}

	obj, err := u.store.Put(ctx, objectKey(kind, ownerID, ".webp"), bytes.NewReader(encoded), int64(len(encoded)), "image/webp")
	if err != nil {
		return nil, err
	}
	return &Upload{Key: obj.Key, URL: obj.URL, Size: int64(len(encoded))}, nil
}

// Remove deletes stored objects, logging failures instead of returning them.
// Empty keys are skipped.
func (u *Uploader) Remove(ctx context.Context, keys ...string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := u.store.Delete(ctx, key); err != nil {
			middleware.Logger.WarnContext(ctx, "media cleanup failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
	}
}

func recordUpload(kind string, upload *Upload, err error) {
	if err != nil {
		observability.MediaUploads.WithLabelValues(kind, "error").Inc()
		return
	}
	observability.MediaUploads.WithLabelValues(kind, "ok").Inc()
	if upload != nil {
		observability.MediaUploadBytes.WithLabelValues(kind).Observe(float64(upload.Size))
	}
}
