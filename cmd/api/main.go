package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "ticketflow-backend/internal/adapter/http"
	"ticketflow-backend/internal/adapter/middleware"
	"ticketflow-backend/internal/adapter/repository/mysql"
	"ticketflow-backend/internal/config"
	"ticketflow-backend/internal/infrastructure/cache"
	"ticketflow-backend/internal/infrastructure/db"
	ucAuth "ticketflow-backend/internal/usecase/auth"
	ucEngine "ticketflow-backend/internal/usecase/engine"
	ucRecord "ticketflow-backend/internal/usecase/record"
	ucUser "ticketflow-backend/internal/usecase/user"
	ucWorkflow "ticketflow-backend/internal/usecase/workflow"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	workflowRepo := mysql.NewWorkflowRepository(gdb)
	voteRepo := mysql.NewVoteRepository(gdb)
	subjectRepo := mysql.NewSubjectRepository(gdb)
	ticketRepo := mysql.NewTicketRepository(gdb)
	reprintRepo := mysql.NewReprintRequestRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	tokenRepo := mysql.NewAuthTokenRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	// usecases
	authUC := ucAuth.NewUsecase(userRepo, tokenRepo, []byte(cfg.JWTSecret), cfg.AccessTTL)
	userUC := ucUser.NewUsecase(userRepo)
	workflowUC := ucWorkflow.NewUsecase(workflowRepo, subjectRepo)
	recordUC := ucRecord.NewUsecase(ticketRepo, reprintRepo)
	engineUC := ucEngine.NewUsecase(workflowRepo, voteRepo, subjectRepo, uow)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:   httpadp.NewHandler(),
		Auth:     httpadp.NewAuthHandler(authUC),
		User:     httpadp.NewUserHandler(userUC),
		Workflow: httpadp.NewWorkflowHandler(workflowUC),
		Record:   httpadp.NewRecordHandler(recordUC),
		Approval: httpadp.NewApprovalHandler(engineUC),
	}, authUC, middleware.IdempotencyMiddleware(rdb, idemTTL))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
