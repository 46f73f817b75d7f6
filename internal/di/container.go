package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-microsite/internal/adapters/noop"
	"github.com/goliatone/go-microsite/internal/adapters/publishapi"
	"github.com/goliatone/go-microsite/internal/builder"
	websitecmd "github.com/goliatone/go-microsite/internal/commands/website"
	"github.com/goliatone/go-microsite/internal/documents"
	"github.com/goliatone/go-microsite/internal/generator"
	apihttp "github.com/goliatone/go-microsite/internal/http"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/logging/console"
	"github.com/goliatone/go-microsite/internal/logging/gologger"
	"github.com/goliatone/go-microsite/internal/markdown"
	"github.com/goliatone/go-microsite/internal/media"
	"github.com/goliatone/go-microsite/internal/publish"
	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/internal/runtimeconfig"
	"github.com/goliatone/go-microsite/internal/sections"
	"github.com/goliatone/go-microsite/internal/workflow"
	"github.com/goliatone/go-microsite/internal/workflow/simple"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"google.golang.org/api/option"
)

// ErrBunDBRequired is returned when the bun storage provider has neither a
// handle nor a DSN to open one.
var ErrBunDBRequired = errors.New("di: bun storage provider requires a database")

// Container wires the website builder services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	now            func() time.Time

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	markdownParser   interfaces.MarkdownParser
	contentGenerator interfaces.ContentGenerator
	uploader         interfaces.StorageUploader
	endpoint         interfaces.PublishEndpoint
	engine           interfaces.WorkflowEngine
	commandRegistry  websitecmd.CommandRegistry
	gcsOptions       []option.ClientOption

	registry  *render.Registry
	renderer  *render.Renderer
	store     interfaces.DocumentStore
	generator *generator.Service
	commands  *websitecmd.HandlerSet
	api       *apihttp.WebsiteAPI

	closers []func() error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider used by every module.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithClock overrides the time source shared by the services.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// WithBunDB supplies the database used by the bun storage provider.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithDocumentStore bypasses the configured storage provider.
func WithDocumentStore(store interfaces.DocumentStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.markdownParser = parser
	}
}

// WithContentGenerator binds the external content generator.
func WithContentGenerator(gen interfaces.ContentGenerator) Option {
	return func(c *Container) {
		c.contentGenerator = gen
	}
}

// WithUploader bypasses the configured media provider.
func WithUploader(uploader interfaces.StorageUploader) Option {
	return func(c *Container) {
		c.uploader = uploader
	}
}

// WithGCSClientOptions forwards client options (credentials, endpoint) to the
// GCS uploader.
func WithGCSClientOptions(opts ...option.ClientOption) Option {
	return func(c *Container) {
		c.gcsOptions = append(c.gcsOptions, opts...)
	}
}

// WithPublishEndpoint overrides the publish endpoint.
func WithPublishEndpoint(endpoint interfaces.PublishEndpoint) Option {
	return func(c *Container) {
		c.endpoint = endpoint
	}
}

// WithWorkflowEngine overrides the lifecycle engine.
func WithWorkflowEngine(engine interfaces.WorkflowEngine) Option {
	return func(c *Container) {
		c.engine = engine
	}
}

// WithCommandRegistry registers the website commands with a host registry.
func WithCommandRegistry(reg websitecmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer validates cfg and wires every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLoggerProvider,
		c.configureRendering,
		c.configureCacheDefaults,
		c.configureStore,
		c.configureUploader,
		c.configurePublishing,
		c.configureCommands,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{
			TimeFunc: c.now,
			Color:    strings.EqualFold(strings.TrimSpace(c.Config.Logging.Format), "color"),
		}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureRendering() error {
	if c.markdownParser == nil && c.Config.Features.Markdown {
		parser, err := markdown.NewGoldmarkParser(interfaces.MarkdownOptions{
			Extensions: c.Config.Markdown.Extensions,
			Sanitize:   c.Config.Markdown.Sanitize,
			HardWraps:  c.Config.Markdown.HardWraps,
			SafeMode:   c.Config.Markdown.SafeMode,
		})
		if err != nil {
			return err
		}
		c.markdownParser = parser
	}
	sectionOpts := []sections.Option{}
	if c.markdownParser != nil {
		sectionOpts = append(sectionOpts, sections.WithMarkdown(c.markdownParser))
	}
	registry, err := sections.NewRegistry(sectionOpts...)
	if err != nil {
		return err
	}
	c.registry = registry
	c.renderer = render.NewRenderer(registry,
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
		render.WithClock(c.now),
	)
	return nil
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled {
		c.cacheService = nil
		c.keySerializer = nil
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return err
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureStore() error {
	if c.store != nil {
		return nil
	}
	storeOpts := []documents.StoreOption{
		documents.WithLogger(logging.DocumentsLogger(c.loggerProvider)),
		documents.WithClock(c.now),
	}
	if strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) != "bun" {
		c.store = documents.NewMemoryStore(storeOpts...)
		return nil
	}

	if c.bunDB == nil {
		if strings.TrimSpace(c.Config.Storage.DSN) == "" {
			return ErrBunDBRequired
		}
		db, err := documents.Open(c.Config.Storage.Driver, c.Config.Storage.DSN)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.closers = append(c.closers, db.Close)
	}
	if err := documents.RegisterModels(context.Background(), c.bunDB); err != nil {
		return fmt.Errorf("di: register document models: %w", err)
	}
	if c.cacheService != nil && c.keySerializer != nil {
		c.store = documents.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer, storeOpts...)
	} else {
		c.store = documents.NewBunStore(c.bunDB, storeOpts...)
	}
	return nil
}

func (c *Container) configureUploader() error {
	if c.uploader != nil {
		return nil
	}
	mediaCfg := c.Config.Media
	if strings.ToLower(strings.TrimSpace(mediaCfg.Provider)) != "gcs" {
		c.uploader = media.NewMemoryUploader(strings.TrimRight(c.Config.Publish.BaseURL, "/")+"/media", mediaCfg.Prefix)
		return nil
	}
	uploader, err := media.NewGCSUploader(context.Background(), media.GCSConfig{
		Bucket:    mediaCfg.Bucket,
		Prefix:    mediaCfg.Prefix,
		CDNDomain: mediaCfg.CDNDomain,
	}, c.gcsOptions, media.WithGCSLogger(logging.MediaLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.uploader = uploader
	c.closers = append(c.closers, uploader.Close)
	return nil
}

func (c *Container) configurePublishing() error {
	if c.endpoint == nil {
		if endpoint := strings.TrimSpace(c.Config.Publish.Endpoint); endpoint != "" {
			client, err := publishapi.NewClient(endpoint,
				publishapi.WithBearerToken(c.Config.Publish.Token),
				publishapi.WithLogger(logging.PublishLogger(c.loggerProvider)),
			)
			if err != nil {
				return err
			}
			c.endpoint = client
		} else {
			c.endpoint = publishapi.NewMemoryEndpoint(c.Config.Publish.BaseURL)
		}
	}
	if c.engine == nil {
		engine := simple.New(simple.WithClock(c.now))
		definitions, err := workflow.CompileDefinitionConfigs(c.Config.Workflow.Definitions)
		if err != nil {
			return err
		}
		for _, definition := range definitions {
			if err := engine.RegisterWorkflow(context.Background(), definition); err != nil {
				return err
			}
		}
		c.engine = engine
	}
	c.generator = generator.NewService(c.contentGenerator,
		generator.WithLogger(logging.GeneratorLogger(c.loggerProvider)),
		generator.WithClock(c.now),
	)
	if c.contentGenerator == nil {
		c.contentGenerator = noop.Generator()
	}
	return nil
}

func (c *Container) configureCommands() error {
	var reg websitecmd.CommandRegistry
	if c.Config.Commands.Enabled {
		reg = c.commandRegistry
	}
	deps := websitecmd.Dependencies{
		Generator:   c.generator,
		Store:       c.store,
		NewWorkflow: c.NewPublishWorkflow,
		Timeout:     c.Config.Commands.Timeout,
	}
	if c.Config.Features.SchemaChecks {
		deps.SchemaLookup = c.registry.Schema
	}
	set, err := websitecmd.RegisterWebsiteCommands(reg, deps, c.loggerProvider)
	if err != nil {
		return err
	}
	c.commands = set
	c.api = apihttp.NewWebsiteAPI(c.store, set,
		apihttp.WithRenderer(c.renderer),
		apihttp.WithLogger(logging.ModuleLogger(c.loggerProvider, "microsite.http")),
		apihttp.WithClock(c.now),
	)
	if c.Config.Commands.Enabled {
		unsubscribe := websitecmd.SubscribeDispatcher(set)
		c.closers = append(c.closers, func() error {
			unsubscribe()
			return nil
		})
	}
	return nil
}

// NewPublishWorkflow returns a fresh lifecycle for one website.
func (c *Container) NewPublishWorkflow() *publish.Workflow {
	opts := []publish.Option{
		publish.WithEngine(c.engine),
		publish.WithLogger(logging.PublishLogger(c.loggerProvider)),
		publish.WithSlugLimit(c.Config.Publish.MaxSlugLength),
	}
	if c.Config.Publish.ReservedSlugs != nil {
		opts = append(opts, publish.WithReservedSlugs(c.Config.Publish.ReservedSlugs))
	}
	return publish.New(c.endpoint, opts...)
}

// NewShell opens a builder session over doc.
func (c *Container) NewShell(doc website.Document, opts ...builder.Option) *builder.Shell {
	base := []builder.Option{
		builder.WithRenderer(c.renderer),
		builder.WithLogger(logging.BuilderLogger(c.loggerProvider)),
		builder.WithClock(c.now),
	}
	return builder.NewShell(doc, append(base, opts...)...)
}

// NewImagePanel binds the configured uploader and limits to a shell.
func (c *Container) NewImagePanel(shell *builder.Shell, opts ...builder.ImageOption) *builder.ImagePanel {
	cfg := builder.ImageConfig{
		MaxUploadBytes:     c.Config.Builder.MaxUploadBytes,
		ProgressInterval:   c.Config.Builder.ProgressInterval,
		ProgressStep:       c.Config.Builder.ProgressStep,
		ProgressResetDelay: c.Config.Builder.ProgressResetDelay,
	}
	base := []builder.ImageOption{builder.WithImageConfig(cfg)}
	return shell.Images(c.uploader, append(base, opts...)...)
}

// LoggerProvider exposes the provider used by every module.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Renderer exposes the configured renderer.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// SectionRegistry exposes the block registry.
func (c *Container) SectionRegistry() *render.Registry {
	return c.registry
}

// DocumentStore exposes the draft store.
func (c *Container) DocumentStore() interfaces.DocumentStore {
	return c.store
}

// Uploader exposes the media uploader.
func (c *Container) Uploader() interfaces.StorageUploader {
	return c.uploader
}

// PublishEndpoint exposes the publish endpoint.
func (c *Container) PublishEndpoint() interfaces.PublishEndpoint {
	return c.endpoint
}

// Generator exposes the generation service.
func (c *Container) Generator() *generator.Service {
	return c.generator
}

// ContentGenerator exposes the bound generator, a disabled one when none was supplied.
func (c *Container) ContentGenerator() interfaces.ContentGenerator {
	return c.contentGenerator
}

// Commands exposes the website command handlers.
func (c *Container) Commands() *websitecmd.HandlerSet {
	return c.commands
}

// API exposes the HTTP adapter.
func (c *Container) API() *apihttp.WebsiteAPI {
	return c.api
}

// Close releases resources opened by the container.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for idx := len(c.closers) - 1; idx >= 0; idx-- {
		if err := c.closers[idx](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
