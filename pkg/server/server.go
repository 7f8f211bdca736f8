package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	gormdb "gorm.io/gorm"

	"github.com/taskgate/taskgate/pkg/authz"
	"github.com/taskgate/taskgate/pkg/config"
	"github.com/taskgate/taskgate/pkg/idempotency"
	"github.com/taskgate/taskgate/pkg/invite"
	"github.com/taskgate/taskgate/pkg/provision"
	"github.com/taskgate/taskgate/pkg/server/middleware"
	"github.com/taskgate/taskgate/pkg/server/store"
	storegorm "github.com/taskgate/taskgate/pkg/server/store/gorm"
	"github.com/taskgate/taskgate/pkg/token"
)

type Server struct {
	Router *mux.Router
	DB     *gormdb.DB
	Config *config.TaskGateConfig
	Logger *zap.Logger

	UsersStore       store.UsersStore
	ProjectsStore    store.ProjectsStore
	TasksStore       store.TasksStore
	OperationsStore  store.OperationsStore
	MembershipsStore store.MembershipsStore
	PermissionsStore store.PermissionsStore
	HealthStore      store.HealthStore

	Engine      *authz.Engine
	Provisioner *provision.Provisioner
	Invites     *invite.Service
	Tokens      *token.Service
	Guard       *idempotency.Guard

	AuthMiddleware *middleware.Authenticator

	srv *http.Server
}

func NewServer(
	db *gormdb.DB,
	cfg *config.TaskGateConfig,
	logger *zap.Logger,
	host string,
	port string,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	memberships := storegorm.NewMembershipsStore(db)
	operations := storegorm.NewOperationsStore(db)
	permissions := storegorm.NewPermissionsStore(db)

	tokens := token.NewService([]byte(cfg.AuthTokenSecret), cfg.AuthTTL())

	return &Server{
		Router: router,
		DB:     db,
		Config: cfg,
		Logger: logger,

		UsersStore:       storegorm.NewUsersStore(db),
		ProjectsStore:    storegorm.NewProjectsStore(db),
		TasksStore:       storegorm.NewTasksStore(db),
		OperationsStore:  operations,
		MembershipsStore: memberships,
		PermissionsStore: permissions,
		HealthStore:      storegorm.NewHealthStore(db),

		Engine:      authz.NewEngine(memberships, operations, permissions, logger),
		Provisioner: provision.NewProvisioner(memberships, operations, logger),
		Invites:     invite.NewService([]byte(cfg.InviteTokenSecret), cfg.InviteTTL()),
		Tokens:      tokens,
		Guard:       idempotency.NewGuard(cfg.IdempotencyWindow()),

		AuthMiddleware: middleware.NewAuthenticator(tokens, cfg),

		srv: srv,
	}
}

func (s *Server) Start() error {
	s.Logger.Info("server listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}
