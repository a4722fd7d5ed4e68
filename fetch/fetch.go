package fetch

import (
	"bytes"
	"fmt"
	"io"

	"github.com/indigo-web/rawfetch/config"
	"github.com/indigo-web/rawfetch/errors"
	"github.com/indigo-web/rawfetch/internal/buffer"
	"github.com/indigo-web/rawfetch/internal/http1"
	"github.com/indigo-web/rawfetch/transport"
	"go.uber.org/zap"
)

type Options struct {
	// Config defaults to config.Default()
	Config *config.Config
	// Logger defaults to zap.NewNop()
	Logger *zap.Logger
}

// Fetcher downloads resources from the server set in the config, one connection per
// download. It is not safe for concurrent use, as the config it holds may be changed
// by the caller at any moment.
type Fetcher struct {
	cfg    *config.Config
	logger *zap.Logger
}

func New(opts Options) *Fetcher {
	if opts.Config == nil {
		opts.Config = config.Default()
	}

	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Fetcher{
		cfg:    opts.Config,
		logger: opts.Logger.Named("fetch"),
	}
}

// Config returns the config the fetcher works with.
func (f *Fetcher) Config() *config.Config {
	return f.cfg
}

// Fetch downloads the path into the out file. The file appears only if the download
// succeeded, even if the body turned out to be empty. An existing file is replaced.
func (f *Fetcher) Fetch(path, out string) (Report, error) {
	file, err := newSink(out)
	if err != nil {
		return f.newReport(path, out), err
	}

	defer file.Discard()

	report, err := f.Stream(path, file)
	report.Output = out
	if err != nil {
		return report, err
	}

	if err = file.Commit(); err != nil {
		return report, err
	}

	f.logger.Info("downloaded", report.fields()...)

	return report, nil
}

// Stream downloads the path, writing the body into the w.
func (f *Fetcher) Stream(path string, w io.Writer) (report Report, err error) {
	cfg := f.cfg
	report = f.newReport(path, "")

	if cfg.NET.ReadBufferSize <= 0 {
		return report, fmt.Errorf("%w: read buffer size must be positive", errors.ErrBadConfig)
	}

	if cfg.Headers.Space.Default < 0 || cfg.Headers.Space.Maximal < 0 {
		return report, fmt.Errorf("%w: header space must not be negative", errors.ErrBadConfig)
	}

	conn, err := transport.Dial(cfg.Fetch.Host, cfg.Fetch.Port, cfg.NET)
	if err != nil {
		return report, err
	}

	client := transport.NewClient(conn, make([]byte, cfg.NET.ReadBufferSize))
	defer client.Close()

	request := http1.RenderGET(make([]byte, 0, 128), path, cfg.Fetch.Host, cfg.Fetch.Port)
	if _, err = client.Write(request); err != nil {
		return report, fmt.Errorf("%w: %w", errors.ErrWriteRequest, err)
	}

	f.logger.Debug("request sent",
		zap.String("host", cfg.Fetch.Host),
		zap.Uint16("port", cfg.Fetch.Port),
		zap.String("path", path),
		zap.Stringer("remote", client.Remote()),
	)

	splitter := http1.NewSplitter(
		buffer.New(cfg.Headers.Space.Default, cfg.Headers.Space.Maximal),
		cfg.Fetch.StripHeaders,
	)
	stats, err := http1.Drain(client, w, splitter)
	report.apply(stats)
	if err != nil {
		return report, err
	}

	switch {
	case !cfg.Fetch.StripHeaders:
	case stats.Boundary:
		f.logger.Debug("header stripped",
			zap.String("status", statusLine(splitter.Header())),
			zap.Int("header_bytes", stats.HeaderBytes),
		)
	default:
		f.logger.Debug("stream ended before the header was completed, no body received",
			zap.Int("header_bytes", stats.HeaderBytes),
		)
	}

	return report, nil
}

func (f *Fetcher) newReport(path, out string) Report {
	return Report{
		Host:   f.cfg.Fetch.Host,
		Port:   f.cfg.Fetch.Port,
		Path:   path,
		Output: out,
	}
}

func statusLine(header []byte) string {
	if crlf := bytes.IndexByte(header, '\r'); crlf != -1 {
		header = header[:crlf]
	}

	return string(header)
}
