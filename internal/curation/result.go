package curation

import (
	"errors"
	"strings"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/metrics"

	"github.com/rs/zerolog/log"
)

// RowFailure is one artwork a multi-row mutation could not write.
type RowFailure struct {
	ID      string      `json:"id"`
	Code    apperr.Kind `json:"code"`
	Message string      `json:"error"`
	Err     error       `json:"-"`
}

// BulkResult is the per-artwork outcome of a multi-row mutation. Rows are never rolled back:
// everything in Succeeded stays written even when later rows failed.
type BulkResult struct {
	Succeeded []string     `json:"succeeded"`
	Skipped   []string     `json:"skipped"`
	Failed    []RowFailure `json:"failed"`
}

func newBulkResult() BulkResult {
	return BulkResult{Succeeded: []string{}, Skipped: []string{}, Failed: []RowFailure{}}
}

func (r BulkResult) Partial() bool {
	return len(r.Failed) > 0
}

func (r *BulkResult) succeed(id string) {
	r.Succeeded = append(r.Succeeded, id)
}

func (r *BulkResult) skip(id string) {
	r.Skipped = append(r.Skipped, id)
}

func (r *BulkResult) fail(op, id string, err error) {
	var message string
	var known *apperr.Error
	if errors.As(err, &known) {
		message = known.Message
	} else {
		message = err.Error()
	}
	r.Failed = append(r.Failed, RowFailure{ID: id, Code: apperr.KindOf(err), Message: message, Err: err})

	log.Warn().Err(err).Str("operation", op).Str("artwork_id", id).Msg("artwork row not updated")
}

// finish records the outcome and applies the quorum rule: the call fails only when no row
// succeeded or was already up to date.
func (r BulkResult) finish(op, message string) (BulkResult, error) {
	metrics.BulkRowsTotal.WithLabelValues(op, "succeeded").Add(float64(len(r.Succeeded)))
	metrics.BulkRowsTotal.WithLabelValues(op, "skipped").Add(float64(len(r.Skipped)))
	metrics.BulkRowsTotal.WithLabelValues(op, "failed").Add(float64(len(r.Failed)))

	if len(r.Failed) == 0 || len(r.Succeeded)+len(r.Skipped) > 0 {
		if r.Partial() {
			log.Warn().
				Str("operation", op).
				Int("succeeded", len(r.Succeeded)).
				Int("failed", len(r.Failed)).
				Msg("partial update")
		}
		return r, nil
	}

	kind := r.Failed[0].Code
	details := make([]string, 0, len(r.Failed))
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		if f.Code != kind {
			kind = apperr.KindUpdateFailed
		}
		details = append(details, f.ID+": "+f.Err.Error())
		errs = append(errs, f.Err)
	}
	if kind == apperr.KindUnknown {
		kind = apperr.KindUpdateFailed
	}

	return r, &apperr.Error{
		Kind:    kind,
		Message: message,
		Detail:  strings.Join(details, "; "),
		Err:     errors.Join(errs...),
	}
}
