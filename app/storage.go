package app

// KeyValueStore is a string-keyed persistent store, the same shape as a
// browser's localStorage. Implemented by infra/kv.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
