package csc

// Storage backends for the cart.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// DefaultPlaceholderImage is shown for search results without an image.
const DefaultPlaceholderImage = "/img/products/no-image.png"

// Config holds the settings shared by the csc commands.
type Config struct {
	// Storage selects the cart backend: StorageSQLite or StorageFile.
	Storage string

	// DBPath is the SQLite database path. Use ":memory:" for tests.
	DBPath string

	// CartFile is the JSON file used by the file backend.
	CartFile string

	// CartKey is the store key the cart is saved under.
	CartKey string

	// Index is the search index location: an http(s) URL or a file path.
	Index string

	// SiteURL is the site origin used for sitemap and search URLs.
	SiteURL string

	// BasePath prefixes product links, e.g. "/central-supply-catalog".
	BasePath string

	// PlaceholderImage is shown for results without an image.
	PlaceholderImage string

	// SearchLimit caps the number of search results. Zero means no limit.
	SearchLimit int
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Storage:          StorageSQLite,
		DBPath:           "csc.db",
		CartFile:         "cart.json",
		CartKey:          DefaultCartKey,
		Index:            DefaultIndexPath,
		PlaceholderImage: DefaultPlaceholderImage,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			return Errorf(EINVALID, "db path required for sqlite storage")
		}
	case StorageFile:
		if c.CartFile == "" {
			return Errorf(EINVALID, "cart file required for file storage")
		}
	default:
		return Errorf(EINVALID, "unknown storage %q", c.Storage)
	}
	if c.CartKey == "" {
		return Errorf(EINVALID, "cart key required")
	}
	if c.SearchLimit < 0 {
		return Errorf(EINVALID, "search limit must not be negative")
	}
	return nil
}
