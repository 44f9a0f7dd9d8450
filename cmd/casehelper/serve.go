package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/comigor/casehelper-go/internal/agent"
	"github.com/comigor/casehelper-go/internal/export"
	"github.com/comigor/casehelper-go/internal/logger"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/timeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), current)
	},
}

func serve(ctx context.Context, a *app) error {
	serverAddr := fmt.Sprintf("%s:%s", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := &http.Server{Addr: serverAddr, Handler: newMux(a), ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.L.Info("starting server", "address", serverAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newMux(a *app) *http.ServeMux {
	mux := http.NewServeMux()

	// main inference endpoint: the body is the question
	mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			logger.L.Error("read body error", "err", err)
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		turn, err := a.assistant.Ask(r.Context(), string(body))
		switch {
		case errors.Is(err, agent.ErrBusy):
			http.Error(w, "a question is already being answered", http.StatusConflict)
			return
		case errors.Is(err, agent.ErrEmptyQuestion):
			http.Error(w, "empty question", http.StatusBadRequest)
			return
		case err != nil:
			logger.L.Error("process error", "err", err)
			http.Error(w, "failed to process request", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(turn.Text))
	})

	mux.HandleFunc("GET /conversation", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.log.Snapshot())
	})

	mux.HandleFunc("GET /timeline", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.timeline.Snapshot())
	})

	mux.HandleFunc("POST /timeline", func(w http.ResponseWriter, r *http.Request) {
		var e timeline.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, "invalid event", http.StatusBadRequest)
			return
		}
		events, err := a.timeline.Add(e.Date, e.Description)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, events)
	})

	mux.HandleFunc("GET /profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.profile.Snapshot())
	})

	mux.HandleFunc("PATCH /profile", func(w http.ResponseWriter, r *http.Request) {
		var u struct {
			Name         *string `json:"name"`
			CaseNumber   *string `json:"caseNumber"`
			AttorneyName *string `json:"attorneyName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			http.Error(w, "invalid profile", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, a.profile.Update(profile.Update{Name: u.Name, CaseNumber: u.CaseNumber, AttorneyName: u.AttorneyName}))
	})

	mux.HandleFunc("GET /export.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="case-conversation.txt"`)
		if err := export.WriteText(w, a.log.Snapshot()); err != nil {
			logger.L.Warn("text export write failed", "error", err)
		}
	})

	mux.HandleFunc("GET /export.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="case-summary.pdf"`)
		if err := a.layout.WritePDF(w, a.layout.Document(a.sources().Snapshot())); err != nil {
			logger.L.Warn("pdf export write failed", "error", err)
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Warn("response encode failed", "error", err)
	}
}
