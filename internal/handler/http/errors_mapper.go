package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-digest-sync/internal/service"
	"github.com/MKhiriev/go-digest-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrSessionNotFound:  http.StatusNotFound,
	service.ErrSessionForbidden: http.StatusForbidden,
	service.ErrSessionExpired:   http.StatusUnauthorized,
	service.ErrTokenIsExpired:   http.StatusUnauthorized,

	service.ErrValidationNoSessionID: http.StatusBadRequest,
	service.ErrValidationNoOwnerID:   http.StatusBadRequest,
	service.ErrValidationBadSince:    http.StatusBadRequest,
	service.ErrValidationNoChanges:   http.StatusBadRequest,

	store.ErrSummaryNotFound: http.StatusNotFound,
	store.ErrVersionConflict: http.StatusConflict,

	store.ErrSessionStoreUnavailable: http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:        http.StatusInternalServerError,
	store.ErrExecutingQuery:          http.StatusInternalServerError,
	store.ErrExecutingStatement:      http.StatusInternalServerError,
	store.ErrScanningRow:             http.StatusInternalServerError,
	store.ErrScanningRows:            http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
