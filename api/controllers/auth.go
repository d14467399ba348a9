package controllers

import (
	"net/http"

	"github.com/northhaul/fleetops-backend/api/responses"
	"github.com/northhaul/fleetops-backend/api/validators"
	authsvc "github.com/northhaul/fleetops-backend/internal/auth"
	pkgerrors "github.com/northhaul/fleetops-backend/pkg/errors"
	"github.com/northhaul/fleetops-backend/pkg/logger"
)

// Login exchanges the configured credential pair for a bearer token.
func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
