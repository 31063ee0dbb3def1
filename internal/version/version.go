// ABOUTME: Version information for sinky binaries
// ABOUTME: Overridden at build time with -ldflags "-X"
package version

var (
	// Version is the release version
	Version = "0.1.0"

	// Product is the product name shown in the TUI and logs
	Product = "Sinky"

	// Manufacturer is the vendor name
	Manufacturer = "Sinky Audio"
)
