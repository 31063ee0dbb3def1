// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for all audio decoders
package decode

// Decoder decodes audio bytes into samples of one format
type Decoder[S any] interface {
	// Decode converts encoded audio data to samples
	Decode(data []byte) ([]S, error)

	// Close releases decoder resources
	Close() error
}
