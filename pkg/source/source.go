package source

import (
	"context"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/appgraph/pkg/apps"
	apperrors "github.com/matzehuels/appgraph/pkg/errors"
)

// Source produces the record array for one pipeline run.
type Source interface {
	Fetch(ctx context.Context) ([]apps.Record, error)
	// String describes where records come from, for logs and errors.
	String() string
}

// Options configures sources created by Open.
type Options struct {
	Retries    int           // total attempts for HTTP sources (default 3)
	RetryDelay time.Duration // initial backoff (default 500ms)
	Client     *http.Client  // default httputil.NewClient()
	Logger     *log.Logger
}

// Open returns an HTTP source for http(s) URLs and a File source otherwise.
func Open(location string, opts Options) (Source, error) {
	if apperrors.IsURL(location) {
		if err := apperrors.ValidateURL(location); err != nil {
			return nil, err
		}
		return &HTTP{
			URL:        location,
			Retries:    opts.Retries,
			RetryDelay: opts.RetryDelay,
			Client:     opts.Client,
			Logger:     opts.Logger,
		}, nil
	}
	if err := apperrors.ValidatePath(location); err != nil {
		return nil, err
	}
	return File{Path: location}, nil
}

// File reads records from a JSON file on disk.
type File struct {
	Path string
}

// Fetch reads and decodes the file.
func (f File) Fetch(ctx context.Context) ([]apps.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return apps.ImportJSON(f.Path)
}

func (f File) String() string { return f.Path }

// Static serves records that are already in memory, such as a request body.
type Static []apps.Record

// Fetch returns a copy of the records.
func (s Static) Fetch(ctx context.Context) ([]apps.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone([]apps.Record(s)), nil
}

func (s Static) String() string { return "inline records" }

func discard() *log.Logger { return log.New(io.Discard) }
