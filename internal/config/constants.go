package config

const SourceFileExt = ".sfx"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".sfx", ".sufx"}

// ConfigFileName is the per-project configuration file.
const ConfigFileName = "sufx.yaml"

// EnvBackend overrides the configured backend when set.
const EnvBackend = "SUFX_BACKEND"
