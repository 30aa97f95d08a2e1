package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/acme/todoflag/internal/auth"
	"github.com/acme/todoflag/internal/flagged"
	"github.com/acme/todoflag/internal/flagging"
	"github.com/acme/todoflag/internal/handler"
	"github.com/acme/todoflag/internal/identity"
	"github.com/acme/todoflag/internal/middleware"
	"github.com/acme/todoflag/internal/policy"
	"github.com/acme/todoflag/internal/store"
	"github.com/acme/todoflag/internal/todo"
	ws "github.com/acme/todoflag/internal/websocket"
)

// Config holds the resolved settings for the whole service.
type Config struct {
	Todo todo.Config
	// MaxUntilFlagged is the reconciler's flagging threshold; zero or less
	// disables flagging.
	MaxUntilFlagged int
	// MaxActiveTodos is the policy check's threshold, independent of
	// MaxUntilFlagged.
	MaxActiveTodos  int
	SweepInterval   time.Duration
	CleanupInterval time.Duration
}

type Server struct {
	db        *sql.DB
	hub       *ws.Hub
	todoH     *handler.TodoHandler
	flaggedH  *handler.FlaggedUserHandler
	userH     *handler.UserHandler
	adminH    *handler.AdminHandler
	scheduler *flagging.Scheduler
	logger    *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	todoStore := store.NewTodoStore(db)
	flagStore := store.NewFlagStore(db)
	userStore := store.NewUserStore(db)

	todoSvc := todo.NewService(todoStore, cfg.Todo)
	flagSvc := flagged.NewService(flagStore)
	resolver := identity.NewDirectoryResolver(userStore)
	checker := policy.NewChecker(todoSvc)

	reconciler := flagging.NewReconciler(
		todoSvc, flagSvc, resolver, hub, cfg.MaxUntilFlagged,
		logger.With("component", "flagging"),
	)
	scheduler := flagging.NewScheduler(
		reconciler, todoSvc, hub, cfg.SweepInterval, cfg.CleanupInterval,
		logger.With("component", "scheduler"),
	)

	return &Server{
		db:        db,
		hub:       hub,
		todoH:     handler.NewTodoHandler(todoSvc, hub, logger.With("component", "todo")),
		flaggedH:  handler.NewFlaggedUserHandler(flagSvc, logger.With("component", "flagged")),
		userH:     handler.NewUserHandler(userStore, logger.With("component", "user")),
		adminH:    handler.NewAdminHandler(todoSvc, reconciler, checker, cfg.MaxActiveTodos, hub, logger.With("component", "admin")),
		scheduler: scheduler,
		logger:    logger,
	}
}

// Scheduler returns the background scheduler so main can start and stop it.
func (s *Server) Scheduler() *flagging.Scheduler {
	return s.scheduler
}

// Router builds the route table. Everything except /health and /ws requires
// gateway identity headers.
func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	apiMux := http.NewServeMux()
	s.registerAPIRoutes(apiMux)
	outerMux.Handle("/api/", middleware.RequireUser(apiMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) registerAPIRoutes(mux *http.ServeMux) {
	viewIdentity := middleware.RequireRight(auth.RightViewIdentity)
	viewFlagged := middleware.RequireRight(auth.RightViewFlaggedUsers)
	systemAdmin := middleware.RequireRight(auth.RightSystemAdmin)

	// Todo routes for the calling user
	mux.HandleFunc("GET /api/todos", s.todoH.List)
	mux.HandleFunc("POST /api/todos", s.todoH.Create)
	mux.HandleFunc("GET /api/todos/{id}", s.todoH.Get)
	mux.HandleFunc("POST /api/todos/{id}/complete", s.todoH.Complete)
	mux.HandleFunc("DELETE /api/todos/{id}", s.todoH.Delete)

	// Administrative todo routes
	mux.Handle("DELETE /api/users/{userId}/todos", viewIdentity(http.HandlerFunc(s.todoH.DeleteForUser)))
	mux.Handle("DELETE /api/todos", systemAdmin(http.HandlerFunc(s.todoH.DeleteAll)))

	// Flagged users
	mux.Handle("GET /api/flagged-users", viewFlagged(http.HandlerFunc(s.flaggedH.List)))

	// Identity directory
	mux.Handle("GET /api/users", systemAdmin(http.HandlerFunc(s.userH.List)))
	mux.Handle("POST /api/users", systemAdmin(http.HandlerFunc(s.userH.Create)))

	// Policy check and operational endpoints
	mux.Handle("GET /api/users/{userId}/policy", viewIdentity(http.HandlerFunc(s.adminH.PolicyCheck)))
	mux.Handle("POST /api/admin/cleanup", systemAdmin(http.HandlerFunc(s.adminH.Cleanup)))
	mux.Handle("POST /api/admin/sweep", systemAdmin(http.HandlerFunc(s.adminH.Sweep)))
}
