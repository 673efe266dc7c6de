package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bookverse/bookverse-backend/api/middleware"
	"github.com/bookverse/bookverse-backend/api/responses"
	"github.com/bookverse/bookverse-backend/internal/ledger"
	"github.com/bookverse/bookverse-backend/internal/wallet"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// GetBalance serves the authenticated user's current balance.
func GetBalance(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, balance)
	}
}

// GetTransactions serves the authenticated user's ledger history, newest
// first.
func GetTransactions(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		history, err := svc.History(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}

const streamKeepAlive = 25 * time.Second

// StreamBalance pushes balance updates over server-sent events. The current
// balance is sent immediately, then every change published for the profile.
// The subscription is released when the client disconnects.
func StreamBalance(svc wallet.Service, watcher wallet.Watcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeInternal, "streaming unsupported"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		balance, err := svc.Balance(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := watcher.Watch(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeDependency, err, "opening balance stream"))
			return
		}
		defer sub.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		writeEvent(w, wallet.BalanceUpdate{
			BalanceCents:     balance.BalanceCents,
			BalanceFormatted: balance.BalanceFormatted,
		})
		flusher.Flush()

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			case update, open := <-sub.Updates():
				if !open {
					return
				}
				writeEvent(w, update)
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, update wallet.BalanceUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: balance\ndata: %s\n\n", payload)
}
