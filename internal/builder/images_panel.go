package builder

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/internal/media"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

const (
	progressCeiling  = 90
	progressComplete = 100
)

var (
	// ErrImageTargetUnsupported indicates the section type has no image slot.
	ErrImageTargetUnsupported = errors.New("builder: section does not accept images")
	// ErrUploaderMissing is returned when uploading without a storage backend.
	ErrUploaderMissing = errors.New("builder: image uploader not configured")
)

// UploadFile is a file picked by the user.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageInfo describes a stored image.
type ImageInfo struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// UploadFailure reports a file that was skipped or failed to store.
type UploadFailure struct {
	Name    string
	Message string
	Err     error
}

// UploadReport summarises a batch. Failures never abort the batch.
type UploadReport struct {
	Uploaded []ImageInfo
	Failures []UploadFailure
}

// Err joins every failure, or returns nil for a clean batch.
func (r UploadReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for idx, failure := range r.Failures {
		errs[idx] = failure.Err
	}
	return errors.Join(errs...)
}

// ImageConfig tunes limits and the simulated progress bar.
type ImageConfig struct {
	MaxUploadBytes     int64
	ProgressInterval   time.Duration
	ProgressStep       int
	ProgressResetDelay time.Duration
}

// DefaultImageConfig mirrors the runtime defaults.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		MaxUploadBytes:     media.DefaultMaxUploadBytes,
		ProgressInterval:   200 * time.Millisecond,
		ProgressStep:       10,
		ProgressResetDelay: time.Second,
	}
}

// ImagePanel uploads images and attaches them to sections.
type ImagePanel struct {
	shell    *Shell
	uploader interfaces.StorageUploader
	cfg      ImageConfig

	onUploaded func(ImageInfo)
	onProgress func(name string, pct int)

	mu      sync.Mutex
	nextID  uint64
	uploads map[uint64]*uploadProgress
	latest  map[string]uint64
}

// uploadProgress is the bar of a single upload. Each one owns its ticker
// and reset timer so overlapping uploads never touch each other's value.
type uploadProgress struct {
	id    uint64
	name  string
	value int
	reset *time.Timer
}

// ImageOption configures the image panel.
type ImageOption func(*ImagePanel)

// WithImageConfig overrides limits and progress timings.
func WithImageConfig(cfg ImageConfig) ImageOption {
	return func(p *ImagePanel) {
		defaults := DefaultImageConfig()
		if cfg.MaxUploadBytes <= 0 {
			cfg.MaxUploadBytes = defaults.MaxUploadBytes
		}
		if cfg.ProgressInterval <= 0 {
			cfg.ProgressInterval = defaults.ProgressInterval
		}
		if cfg.ProgressStep <= 0 || cfg.ProgressStep > progressCeiling {
			cfg.ProgressStep = defaults.ProgressStep
		}
		if cfg.ProgressResetDelay < 0 {
			cfg.ProgressResetDelay = defaults.ProgressResetDelay
		}
		p.cfg = cfg
	}
}

// OnUploaded registers the callback invoked for every stored image.
func OnUploaded(fn func(ImageInfo)) ImageOption {
	return func(p *ImagePanel) {
		p.onUploaded = fn
	}
}

// OnProgress registers an observer for progress changes, reported per file.
func OnProgress(fn func(name string, pct int)) ImageOption {
	return func(p *ImagePanel) {
		p.onProgress = fn
	}
}

// Images returns an image panel backed by uploader.
func (s *Shell) Images(uploader interfaces.StorageUploader, opts ...ImageOption) *ImagePanel {
	p := &ImagePanel{
		shell:    s,
		uploader: uploader,
		cfg:      DefaultImageConfig(),
		uploads:  make(map[uint64]*uploadProgress),
		latest:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Progress returns the displayed percentage of the latest upload of name,
// or 0 once its bar has been reset.
func (p *ImagePanel) Progress(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if upload, ok := p.uploads[p.latest[name]]; ok {
		return upload.value
	}
	return 0
}

// Upload validates and stores every file in turn. Rejected files are
// reported and skipped.
func (p *ImagePanel) Upload(ctx context.Context, files []UploadFile) UploadReport {
	report := UploadReport{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, UploadFailure{Name: file.Name, Message: "upload cancelled", Err: err})
			continue
		}
		info, err := p.uploadOne(ctx, file)
		if err != nil {
			report.Failures = append(report.Failures, failureFor(file.Name, err))
			p.shell.logger.Warn("builder.image.rejected", "file", file.Name, "error", err)
			continue
		}
		report.Uploaded = append(report.Uploaded, info)
		if p.onUploaded != nil {
			p.onUploaded(info)
		}
	}
	return report
}

func (p *ImagePanel) uploadOne(ctx context.Context, file UploadFile) (ImageInfo, error) {
	object := interfaces.UploadObject{Name: file.Name, ContentType: file.ContentType, Data: file.Data}
	contentType, err := media.Check(object, p.cfg.MaxUploadBytes)
	if err != nil {
		return ImageInfo{}, err
	}
	if p.uploader == nil {
		return ImageInfo{}, ErrUploaderMissing
	}
	object.ContentType = contentType

	upload := p.track(file.Name)
	stop := p.startProgress(ctx, upload)
	location, err := p.uploader.Upload(ctx, object)
	stop()
	if err != nil {
		p.release(upload)
		return ImageInfo{}, goerrors.Wrap(err, goerrors.CategoryExternal, "image upload failed").
			WithTextCode("UPLOAD_FAILED")
	}
	p.finishProgress(upload)

	return ImageInfo{
		URL:  location,
		Name: file.Name,
		Size: int64(len(file.Data)),
		Type: contentType,
	}, nil
}

// UploadURL registers an image that is already hosted elsewhere.
func (p *ImagePanel) UploadURL(ctx context.Context, rawURL string) (ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return ImageInfo{}, err
	}
	rawURL = strings.TrimSpace(rawURL)
	err := validation.Errors{
		"url": validation.Validate(rawURL, validation.Required, is.URL),
	}.Filter()
	if err != nil {
		return ImageInfo{}, goerrors.FromOzzoValidation(err, "invalid image url").WithTextCode("IMAGE_URL_INVALID")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ImageInfo{}, goerrors.New("image url must use http or https", goerrors.CategoryValidation).
			WithTextCode("IMAGE_URL_INVALID")
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		name = parsed.Host
	}
	info := ImageInfo{
		URL:  rawURL,
		Name: name,
		Type: mime.TypeByExtension(path.Ext(parsed.Path)),
	}
	if p.onUploaded != nil {
		p.onUploaded(info)
	}
	return info, nil
}

// AttachToSection stores the image in the section's image slot through the
// mutation funnel: galleries append, hero and story replace.
func (p *ImagePanel) AttachToSection(sectionID string, info ImageInfo) error {
	_, err := p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		section, ok := doc.SectionByID(sectionID)
		if !ok {
			return doc, false, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
		}
		if section.Data == nil {
			section.Data = map[string]any{}
		}
		switch section.Type.Normalize() {
		case website.SectionGallery:
			images, _ := section.Data["images"].([]any)
			section.Data["images"] = append(images, map[string]any{"url": info.URL, "alt": info.Name})
		case website.SectionHero:
			section.Data["backgroundImage"] = info.URL
		case website.SectionStory:
			section.Data["image"] = info.URL
		default:
			return doc, false, fmt.Errorf("%w: %s", ErrImageTargetUnsupported, section.Type)
		}
		next, err := render.MergeSection(doc, section, p.shell.now())
		if err != nil {
			return doc, false, err
		}
		return next, true, nil
	})
	return err
}

func (p *ImagePanel) track(name string) *uploadProgress {
	p.mu.Lock()
	p.nextID++
	upload := &uploadProgress{id: p.nextID, name: name}
	p.uploads[upload.id] = upload
	p.latest[name] = upload.id
	p.mu.Unlock()
	p.emitProgress(name, 0)
	return upload
}

// startProgress advances upload's bar on its own ticker until it reaches the
// ceiling or the returned stop func is called.
func (p *ImagePanel) startProgress(ctx context.Context, upload *uploadProgress) func() {
	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(p.cfg.ProgressInterval)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !p.advance(upload, p.cfg.ProgressStep) {
					return
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (p *ImagePanel) advance(upload *uploadProgress, step int) bool {
	p.mu.Lock()
	next := min(upload.value+step, progressCeiling)
	upload.value = next
	p.mu.Unlock()
	p.emitProgress(upload.name, next)
	return next < progressCeiling
}

func (p *ImagePanel) finishProgress(upload *uploadProgress) {
	p.mu.Lock()
	upload.value = progressComplete
	p.mu.Unlock()
	p.emitProgress(upload.name, progressComplete)

	p.mu.Lock()
	upload.reset = time.AfterFunc(p.cfg.ProgressResetDelay, func() {
		p.release(upload)
	})
	p.mu.Unlock()
}

// release drops upload's bar back to 0. A newer upload of the same name
// keeps its own entry.
func (p *ImagePanel) release(upload *uploadProgress) {
	p.mu.Lock()
	if upload.reset != nil {
		upload.reset.Stop()
	}
	upload.value = 0
	delete(p.uploads, upload.id)
	if p.latest[upload.name] == upload.id {
		delete(p.latest, upload.name)
	}
	p.mu.Unlock()
	p.emitProgress(upload.name, 0)
}

func (p *ImagePanel) emitProgress(name string, value int) {
	if p.onProgress != nil {
		p.onProgress(name, value)
	}
}

func failureFor(name string, err error) UploadFailure {
	if rejected, ok := media.RejectionOf(err); ok {
		return UploadFailure{Name: name, Message: rejected.Message(), Err: err}
	}
	return UploadFailure{Name: name, Message: fmt.Sprintf("%s could not be uploaded", name), Err: err}
}
