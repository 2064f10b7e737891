package config

const (
	defaultUploadDir = "~/.local/share/shortcast/uploads"
	defaultOutputDir = "~/.local/share/shortcast/outputs"
	defaultLogDir    = "~/.local/share/shortcast/logs"
	defaultAPIBind   = "127.0.0.1:8841"

	defaultWhisperModel = "base"
	defaultVADMethod    = "silero"

	defaultHighlightCount = 3
	defaultMinDuration    = 15.0
	defaultMaxDuration    = 90.0

	defaultCanvasWidth   = 1080
	defaultCanvasHeight  = 1920
	defaultFPS           = 30
	defaultBitrate       = "2500k"
	defaultWordsPerChunk = 6
	defaultWaveformBars  = 40
	defaultSlideSeconds  = 4.0

	defaultHookBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultHookModel          = "openai/gpt-4o-mini"
	defaultHookReferer        = "https://github.com/shortcast/shortcast"
	defaultHookTitle          = "Shortcast Hook Writer"
	defaultHookTimeoutSeconds = 30

	defaultBackgroundVariants       = 1
	defaultBackgroundWidth          = 512
	defaultBackgroundHeight         = 904
	defaultBackgroundSteps          = 20
	defaultBackgroundGuidance       = 7.5
	defaultBackgroundTimeoutSeconds = 120
	defaultRemoteImageBaseURL       = "https://api.openai.com/v1/images/generations"
	defaultRemoteImageModel         = "dall-e-3"

	defaultQueuePollInterval  = 5
	defaultErrorRetryInterval = 10
	defaultHeartbeatInterval  = 15
	defaultHeartbeatTimeout   = 120

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			UploadDir: defaultUploadDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Transcription: Transcription{
			Model:     defaultWhisperModel,
			VADMethod: defaultVADMethod,
		},
		Highlights: Highlights{
			Count:       defaultHighlightCount,
			MinDuration: defaultMinDuration,
			MaxDuration: defaultMaxDuration,
		},
		Video: Video{
			Width:         defaultCanvasWidth,
			Height:        defaultCanvasHeight,
			FPS:           defaultFPS,
			Bitrate:       defaultBitrate,
			WordsPerChunk: defaultWordsPerChunk,
			WaveformBars:  defaultWaveformBars,
			SlideSeconds:  defaultSlideSeconds,
		},
		Hooks: Hooks{
			BaseURL:        defaultHookBaseURL,
			Model:          defaultHookModel,
			Referer:        defaultHookReferer,
			Title:          defaultHookTitle,
			TimeoutSeconds: defaultHookTimeoutSeconds,
		},
		Backgrounds: Backgrounds{
			Variants:       defaultBackgroundVariants,
			RemoteBaseURL:  defaultRemoteImageBaseURL,
			RemoteModel:    defaultRemoteImageModel,
			Width:          defaultBackgroundWidth,
			Height:         defaultBackgroundHeight,
			Steps:          defaultBackgroundSteps,
			GuidanceScale:  defaultBackgroundGuidance,
			TimeoutSeconds: defaultBackgroundTimeoutSeconds,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			HeartbeatInterval:  defaultHeartbeatInterval,
			HeartbeatTimeout:   defaultHeartbeatTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: 10,
			Transcription:  true,
			Highlights:     true,
			Videos:         true,
			Errors:         true,
		},
	}
}
