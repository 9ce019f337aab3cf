package errors

import "net/http"

var (
	ErrCatalogLoad = New(
		"CATALOG_LOAD_ERROR",
		"Failed to load sports center catalog",
		http.StatusServiceUnavailable,
	)

	ErrCenterNotFound = New(
		"CENTER_NOT_FOUND",
		"Sports center not found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Discovery session not found or expired",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrGeolocationUnavailable = New(
		"GEOLOCATION_UNAVAILABLE",
		"Location could not be determined, filtering continues without it",
		http.StatusOK,
	)

	ErrAvailability = New(
		"AVAILABILITY_ERROR",
		"Availability provider failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
