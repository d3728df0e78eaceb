package source

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/appgraph/pkg/apps"
	"github.com/matzehuels/appgraph/pkg/buildinfo"
	apperrors "github.com/matzehuels/appgraph/pkg/errors"
	"github.com/matzehuels/appgraph/pkg/httputil"
)

const (
	defaultRetries    = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// HTTP fetches the record array with a GET request.
type HTTP struct {
	URL        string
	Retries    int
	RetryDelay time.Duration
	Client     *http.Client
	Logger     *log.Logger
}

func (h *HTTP) String() string { return h.URL }

// Fetch downloads and decodes the record array. Transport errors and
// retryable statuses are retried with exponential backoff; other statuses
// fail immediately.
func (h *HTTP) Fetch(ctx context.Context) ([]apps.Record, error) {
	client := h.Client
	if client == nil {
		client = httputil.NewClient()
	}
	logger := h.Logger
	if logger == nil {
		logger = discard()
	}
	retries := h.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	delay := h.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	var records []apps.Record
	attempt := 0
	err := httputil.Retry(ctx, retries, delay, func() error {
		attempt++
		recs, err := h.get(ctx, client)
		if err != nil {
			if httputil.IsRetryable(err) {
				logger.Debug("fetch attempt failed", "url", h.URL, "attempt", attempt, "error", err)
			}
			return err
		}
		records = recs
		return nil
	})
	if err != nil {
		return nil, h.classify(ctx, err)
	}
	logger.Debug("fetched records", "url", h.URL, "records", len(records), "attempts", attempt)
	return records, nil
}

func (h *HTTP) get(ctx context.Context, client *http.Client) ([]apps.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "build request for %s", h.URL)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, httputil.Retryable(&apperrors.FetchError{Location: h.URL, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &apperrors.FetchError{Location: h.URL, StatusCode: resp.StatusCode}
		if httputil.RetryableStatus(resp.StatusCode) {
			return nil, httputil.Retryable(fe)
		}
		return nil, fe
	}
	return apps.ReadJSON(resp.Body)
}

// classify turns the final error of the retry loop into a coded error.
// Context cancellation is returned as is so callers can tell an interrupt
// apart from a failure.
func (h *HTTP) classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	var fe *apperrors.FetchError
	if !errors.As(err, &fe) {
		return err
	}
	if fe.StatusCode > 0 {
		return apperrors.Wrap(apperrors.ErrCodeFetch, fe, "fetch records")
	}
	var ne net.Error
	if errors.As(fe.Err, &ne) && ne.Timeout() {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, fe, "fetch records")
	}
	return apperrors.Wrap(apperrors.ErrCodeNetwork, fe, "fetch records")
}
