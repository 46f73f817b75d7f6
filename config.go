package microsite

import "github.com/goliatone/go-microsite/internal/runtimeconfig"

var (
	ErrUploadLimitInvalid      = runtimeconfig.ErrUploadLimitInvalid
	ErrProgressStepInvalid     = runtimeconfig.ErrProgressStepInvalid
	ErrPublishBaseURLRequired  = runtimeconfig.ErrPublishBaseURLRequired
	ErrSlugLengthInvalid       = runtimeconfig.ErrSlugLengthInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrMediaProviderUnknown    = runtimeconfig.ErrMediaProviderUnknown
	ErrMediaBucketRequired     = runtimeconfig.ErrMediaBucketRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config                   = runtimeconfig.Config
	BuilderConfig            = runtimeconfig.BuilderConfig
	PublishConfig            = runtimeconfig.PublishConfig
	StorageConfig            = runtimeconfig.StorageConfig
	CacheConfig              = runtimeconfig.CacheConfig
	MediaConfig              = runtimeconfig.MediaConfig
	MarkdownConfig           = runtimeconfig.MarkdownConfig
	CommandsConfig           = runtimeconfig.CommandsConfig
	Features                 = runtimeconfig.Features
	LoggingConfig            = runtimeconfig.LoggingConfig
	WorkflowConfig           = runtimeconfig.WorkflowConfig
	WorkflowDefinitionConfig = runtimeconfig.WorkflowDefinitionConfig
	WorkflowStateConfig      = runtimeconfig.WorkflowStateConfig
	WorkflowTransitionConfig = runtimeconfig.WorkflowTransitionConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
