package routes

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/Dosada05/matchday-predictor/docs"
	"github.com/Dosada05/matchday-predictor/handlers"
	"github.com/Dosada05/matchday-predictor/middleware"
	"github.com/Dosada05/matchday-predictor/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 60 * time.Second

func SetupRoutes(
	router *chi.Mux,
	logger *slog.Logger,
	allowedOrigins []string,
	fifaHandler *handlers.FifaHandler,
	leagueHandler *handlers.LeagueHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/", handlers.Health)
	router.Get("/health", handlers.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(r chi.Router) {
		// Скрейпинг fbref может идти дольше обычного запроса
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Route("/fifa2026", func(r chi.Router) {
			r.Post("/init", fifaHandler.Init)
			r.Get("/flag/{team}", fifaHandler.Flag)

			r.Route("/playoffs", func(r chi.Router) {
				r.Get("/init", fifaHandler.InitPlayoffs)
				r.Post("/predict_match", fifaHandler.PredictPlayoffMatch)
				r.Post("/commit_to_groups", fifaHandler.CommitPlayoffs)
			})

			r.Post("/predict_group_match", fifaHandler.SuggestGroupMatch)
			r.Post("/record_group_match", fifaHandler.RecordGroupMatch)
			r.Post("/submit_group_results", fifaHandler.SubmitGroupResults)
			r.Post("/generate_r32", fifaHandler.GenerateRoundOf32)
			r.Post("/predict_knockout_match", fifaHandler.PredictKnockoutMatch)
			for _, stage := range []string{models.StageRoundOf16, models.StageQuarterFinal, models.StageSemiFinal, models.StageFinal} {
				r.Post("/generate_"+stage, fifaHandler.GenerateStage(stage))
			}
			r.Post("/save_final", fifaHandler.SaveFinal)
			r.Post("/export", fifaHandler.Export)
			r.Get("/snapshots/{ref}", fifaHandler.Snapshot)
		})

		r.Get("/leagues", leagueHandler.Leagues)
		r.Get("/matches/{league}", leagueHandler.Matches)
		r.Post("/predict/{league}", leagueHandler.Predict)
		r.Post("/download/{league}", leagueHandler.Download)
		r.Post("/refresh/{league}", leagueHandler.Refresh)
		r.Get("/status/{league}", leagueHandler.Status)
	})
}
