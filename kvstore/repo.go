package kvstore

// Repo defines the interface for durable key-value storage.
// The session store mirrors every mutation here so state survives process
// restarts; values are opaque JSON blobs owned by the caller.
type Repo interface {
	// Get retrieves the value for a key. The second return is false when the
	// key is absent.
	Get(key string) ([]byte, bool, error)

	// Set stores the value for a key, overwriting any existing value
	Set(key string, value []byte) error

	// Delete removes a key; deleting an absent key is not an error
	Delete(key string) error

	// Close releases any underlying resources
	Close() error
}
