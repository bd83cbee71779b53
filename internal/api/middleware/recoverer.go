package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/tenantbot/api-registry/internal/api/shared"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/redact"
)

// Recoverer turns a handler panic into the 500 envelope. http.ErrAbortHandler
// is re-raised so the server aborts the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"panic", redact.String(fmt.Sprint(rec)),
				"stack", string(debug.Stack()))

			shared.RespondWithError(w, r, http.StatusInternalServerError, MsgInternalError)
		}()

		next.ServeHTTP(w, r)
	})
}
