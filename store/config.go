package store

// Config holds configuration for the Store.
type Config struct {
	// TableName is the DynamoDB table name used for exported items.
	// Default: "vendia_entities"
	TableName string

	// NumShards is the number of hash buckets the identity map is split into.
	// Also used to derive partition keys of exported items.
	// Default: 1 (single bucket)
	// Max: 256
	NumShards int

	// InitialCapacity is a size hint for each bucket.
	// Default: 0
	InitialCapacity int
}

// DefaultConfig returns sensible defaults for small object graphs.
func DefaultConfig() Config {
	return Config{
		TableName: "vendia_entities",
		NumShards: 1,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = "vendia_entities"
	}
	if c.NumShards < 1 {
		c.NumShards = 1
	}
	if c.NumShards > 256 {
		c.NumShards = 256
	}
	if c.InitialCapacity < 0 {
		c.InitialCapacity = 0
	}
}
