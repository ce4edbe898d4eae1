// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Catalog constants
const (
	// DefaultTotalPhotos is the number of photos in the event gallery
	DefaultTotalPhotos = 86

	// DefaultPhotoPattern builds a photo path from its 1-based number
	DefaultPhotoPattern = "images/foto%04d.webp"

	// DefaultImagesDir is the directory served under /images/
	DefaultImagesDir = "images"
)

// Storage constants
const (
	// DefaultStorageKey is the key under which the selection blob is persisted
	DefaultStorageKey = "alexa_xv_photo_selections"

	// DefaultStoragePath is the file used by the file and sqlite backends
	DefaultStoragePath = "selections.json"

	// DefaultSQLitePath replaces DefaultStoragePath for the sqlite backend
	DefaultSQLitePath = "selections.db"

	// DefaultStorageBackend is used when STORAGE_BACKEND is unset
	DefaultStorageBackend = "file"
)

// Selection limit constants
const (
	// DefaultPrintLimit is the recommended maximum of photos for print
	DefaultPrintLimit = 80

	// DefaultEnlargementLimit is the recommended maximum of photos for enlargement
	DefaultEnlargementLimit = 1
)

// Fingerprint constants
const (
	// DefaultDuplicateThreshold is the max pHash Hamming distance for near-duplicates
	DefaultDuplicateThreshold = 6

	// MaxImageSize is the maximum width for compressed previews
	MaxImageSize = 1920

	// DefaultJPEGQuality is the JPEG quality for compressed previews
	DefaultJPEGQuality = 85

	// DefaultConcurrency is the default number of parallel workers
	DefaultConcurrency = 5
)

// Web constants
const (
	// EventChannelBuffer is the buffer size for SSE listener channels
	EventChannelBuffer = 100

	// DefaultWebPort is the port the web server listens on
	DefaultWebPort = 8080

	// DefaultWebHost is the interface the web server binds to
	DefaultWebHost = "0.0.0.0"

	// DefaultFlushRatePerMinute bounds opportunistic flushes triggered by clients
	DefaultFlushRatePerMinute = 12
)
