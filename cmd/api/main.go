package main

import (
	"context"
	"log"

	app "crm_api/internal/application/crm"
	"crm_api/internal/config"
	"crm_api/internal/infrastructure/http/ginserver"
	kafkainfra "crm_api/internal/infrastructure/messaging/kafka"
	"crm_api/internal/infrastructure/persistence/postgres"
	"crm_api/internal/interfaces/http/handler"
	"crm_api/internal/interfaces/http/router"
	"crm_api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	lg, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer lg.Sync()

	ctx := context.Background()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("apply schema failed: %v", err)
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	var events app.Publisher
	if cfg.Kafka.Enabled() {
		producer, err := kafkainfra.NewOrderEventProducer(cfg.Kafka, lg)
		if err != nil {
			log.Fatalf("kafka producer failed: %v", err)
		}
		defer producer.Close()
		events = producer
	}

	svc := app.NewService(customerRepo, productRepo, orderRepo, events, lg)

	crmHandler := handler.NewCRMHandler(svc)
	engine := ginserver.NewEngine()
	router.RegisterRoutes(engine, crmHandler)

	lg.Info("starting api server", logger.String("addr", cfg.Server.Address()))

	server := ginserver.NewServer(cfg.Server, engine)
	if err := server.Run(); err != nil {
		log.Fatalf("server run failed: %v", err)
	}
}
