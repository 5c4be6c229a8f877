package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heliowatt/feasibility-cli/internal/assess"
	"github.com/heliowatt/feasibility-cli/internal/model"
	"github.com/heliowatt/feasibility-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API for feasibility assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initAssessor(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := newRouter(env.Assessor, env.Store)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(assessor *assess.Assessor, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/assess", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Address string              `json:"address"`
			System  model.SystemDetails `json:"system"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Address == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address is required"})
			return
		}

		result, err := assessor.Run(req.Context(), model.Site{
			Address: body.Address,
			System:  body.System,
		})
		if err != nil {
			zap.L().Error("api: assessment failed",
				zap.String("address", body.Address),
				zap.Error(err),
			)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "assessment failed"})
			return
		}

		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/assessments", func(w http.ResponseWriter, req *http.Request) {
		filter := store.AssessmentFilter{
			Status:  model.AssessmentStatus(req.URL.Query().Get("status")),
			Address: req.URL.Query().Get("address"),
		}

		assessments, err := st.ListAssessments(req.Context(), filter)
		if err != nil {
			zap.L().Error("api: list assessments failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
			return
		}
		if assessments == nil {
			assessments = []model.Assessment{}
		}
		writeJSON(w, http.StatusOK, assessments)
	})

	r.Get("/assessments/{id}", func(w http.ResponseWriter, req *http.Request) {
		assessment, err := st.GetAssessment(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "assessment not found"})
			return
		}
		writeJSON(w, http.StatusOK, assessment)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
