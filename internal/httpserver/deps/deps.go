package deps

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/caselens/caselens/internal/export"
	"github.com/caselens/caselens/internal/index"
	"github.com/caselens/caselens/internal/library"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/sparql"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	// Library stores
	Bookmarks   *library.Bookmarks
	Collections *library.Collections
	Cases       *library.CaseCache
	Exporter    *export.Encoder

	// Search proxy
	Sparql          *sparql.Client
	Topics          *index.TopicIndex
	SearchLimit     int
	BrowseLimit     int
	DefaultLanguage string

	// Request validation
	Validate *validator.Validate

	// Ops
	StorageBackend string
	RedisClient    *redis.Client // nil unless the redis backend is active
	AllowedCIDRS   []string      // IPs allowed on ops endpoints
	TrustProxy     bool
	ReloadTrigger  chan struct{} // nil when browse topics are disabled
}
