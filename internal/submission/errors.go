package submission

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError : contenu ou crédits média incomplets à la création
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError : entité absente
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s introuvable : %s", e.Entity, e.ID)
}

// InvalidStateError : opération incompatible avec le statut courant.
// Renvoyée aussi quand un modérateur concurrent a déjà tranché.
type InvalidStateError struct {
	Operation string
	Current   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("opération %s impossible depuis le statut %s", e.Operation, e.Current)
}

// AuthorizationError : rôle insuffisant ou auto-revue
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// HTTPStatus mappe la taxonomie d'erreurs vers un code HTTP pour les handlers.
func HTTPStatus(err error) int {
	var ve *ValidationError
	var nfe *NotFoundError
	var ise *InvalidStateError
	var ae *AuthorizationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nfe):
		return http.StatusNotFound
	case errors.As(err, &ise):
		return http.StatusConflict
	case errors.As(err, &ae):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
