package orders_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/internal/metrics"
	"github.com/BearBump/OrderTrack/internal/models"
)

const dateLayout = "2006-01-02"

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrUnsupportedVariant):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoHistory):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error response for a failed operation and counts it.
func (a *OrdersAPI) fail(w http.ResponseWriter, op string, err error) {
	metrics.OperationErrorsTotal.WithLabelValues(op).Inc()

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.log.Error("operation failed", zap.String("operation", op), zap.Error(err))
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(models.ErrInvalidArgument, "id %q", raw)
	}
	return id, nil
}

// decode reads a JSON body into dst and runs its validate tags.
func (a *OrdersAPI) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(models.ErrInvalidArgument, "invalid request body")
	}
	if err := a.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return errors.Wrapf(models.ErrInvalidArgument, "validation failed: %s", strings.Join(fields, ", "))
		}
		return errors.Wrap(models.ErrInvalidArgument, err.Error())
	}
	return nil
}
