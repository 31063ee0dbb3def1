// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all audio encoders
package encode

// Encoder encodes samples of one format to bytes
type Encoder[S any] interface {
	// Encode converts samples to encoded audio data. The result is only
	// valid until the next call.
	Encode(samples []S) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
