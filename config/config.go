package config

import (
	"github.com/spf13/pflag"
)

type (
	HeadersSpace struct {
		Default int
		// Maximal of zero means the header block may grow without limit.
		Maximal int `test:"nullable"`
	}
)

type (
	Headers struct {
		// Space limits the amount of memory occupied by the response header block. Default is
		// the initial capacity of the accumulation buffer, Maximal is the opt-in hard limit
		// after which the exchange is aborted.
		Space HeadersSpace
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// NoDelay disables Nagle's algorithm on the connection, so the request isn't
		// coalesced and delayed.
		NoDelay bool
	}

	Fetch struct {
		// Host and Port locate the server every download goes to, unless overridden
		// by the caller.
		Host string
		Port uint16
		// PathPrefix is prepended to the version identifier to form the request path.
		PathPrefix string
		// CacheDir holds downloaded files, each named after its version identifier.
		CacheDir string
		// DemoPath is the resource requested by the plain fetch-and-save command.
		DemoPath string
		// DemoOutput is where the fetch-and-save command stores the response by default.
		DemoOutput string
		// StripHeaders discards the response header block, so only the body reaches the
		// output file. If disabled, the raw response is stored as is.
		StripHeaders bool `test:"nullable"`
		// MarkExecutable adds the executable bits to freshly downloaded cache entries.
		MarkExecutable bool `test:"nullable"`
	}
)

// Config holds settings used across the fetcher, mainly limitations, pre-allocations and
// the location of the remote resources.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Headers Headers
	NET     NET
	Fetch   Fetch
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Headers: Headers{
			Space: HeadersSpace{
				Default: 1024,
				// a stream that never terminates its header block is consumed entirely,
				// so there is no cap unless asked for
				Maximal: 0,
			},
		},
		NET: NET{
			ReadBufferSize: 1024,
			NoDelay:        true,
		},
		Fetch: Fetch{
			Host:           "techslides.com",
			Port:           80,
			PathPrefix:     "/demos/samples/",
			CacheDir:       "/tmp",
			DemoPath:       "/demos/samples/sample.txt",
			DemoOutput:     "response.txt",
			StripHeaders:   true,
			MarkExecutable: true,
		},
	}
}

// BindNET registers the connection and parsing limits onto the flag set. Values already
// stored in the config become flag defaults.
func (c *Config) BindNET(fs *pflag.FlagSet) {
	fs.IntVar(&c.NET.ReadBufferSize, "read-buffer", c.NET.ReadBufferSize, "Socket read buffer size in bytes")
	fs.IntVar(&c.Headers.Space.Maximal, "max-header", c.Headers.Space.Maximal, "Maximal response header size in bytes, 0 for no limit")
	fs.BoolVar(&c.NET.NoDelay, "no-delay", c.NET.NoDelay, "Disable Nagle's algorithm on the connection")
}

// BindRemote registers the flags locating the remote server.
func (c *Config) BindRemote(fs *pflag.FlagSet) {
	fs.StringVar(&c.Fetch.Host, "host", c.Fetch.Host, "Remote host")
	fs.Uint16Var(&c.Fetch.Port, "port", c.Fetch.Port, "Remote port")
}

// BindCache registers the flags of the download-and-cache mode.
func (c *Config) BindCache(fs *pflag.FlagSet) {
	fs.StringVar(&c.Fetch.PathPrefix, "prefix", c.Fetch.PathPrefix, "Remote path prefix")
	fs.StringVar(&c.Fetch.CacheDir, "cache-dir", c.Fetch.CacheDir, "Directory holding downloaded files")
}
