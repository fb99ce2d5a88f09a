package main

import (
	"huddle/internal/booking/repository"
	bookingservice "huddle/internal/booking/service"
	"huddle/internal/booking/validator"
	"huddle/internal/chat"
	displayhandler "huddle/internal/display/handler"
	displayservice "huddle/internal/display/service"
	"huddle/internal/sensor"
	"huddle/internal/sweep"
	"huddle/pkg/app"
	"huddle/pkg/config"
	"huddle/pkg/kafka"
	kafkaconfig "huddle/pkg/kafka/config"
	kafkamiddleware "huddle/pkg/kafka/middleware"
	"huddle/pkg/timegrid"
)

const ServiceName = "huddle"

func main() {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()
	cfg.SetMongo()

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	clock := timegrid.SystemClock()

	reservations := repository.NewMongoReservationRepository(cfg)
	proposals := repository.NewMongoProposalRepository(cfg)
	refs := repository.NewMongoBookingRefRepository(cfg)
	reminders := repository.NewMongoReminderRepository(cfg)
	locks := repository.NewMongoBookerLockRepository(cfg)

	lifecycle := bookingservice.NewLifecycleService(
		reservations,
		proposals,
		refs,
		reminders,
		locks,
		validator.NewReservationValidator(cfg.Log),
		clock,
		cfg,
	)
	cfg.Log.Info("Booking lifecycle service initialized", "database", cfg.MongoDatabaseName)

	roomState := sensor.NewState(cfg.CurrentAvgWindow, cfg.LightLow, cfg.LightHigh)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.ChatOutboundTopic, "")
	if err != nil {
		cfg.Log.Fatal("Failed to create chat producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))

	chatHandler := chat.NewHandler(lifecycle, roomState, producer, clock, cfg)
	chatConsumer, err := kafka.NewConsumer(kafkaCfg, cfg.Log, cfg.ChatInboundTopic, cfg.ChatGroupID, cfg.ChatDLQTopic, chatHandler.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create chat consumer", "error", err)
	}
	chatConsumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))

	sensorHandler := sensor.NewHandler(roomState, cfg.Log)
	sensorConsumer, err := kafka.NewConsumer(kafkaCfg, cfg.Log, cfg.SensorTopic, cfg.ChatGroupID, "", sensorHandler.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create sensor consumer", "error", err)
	}

	display := displayservice.NewDisplayService(lifecycle, clock, cfg)
	roomHandler := displayhandler.NewRoomHandler(display, lifecycle, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(roomHandler)
	serverApp.SetProducer(producer)
	serverApp.AddConsumer(chatConsumer)
	serverApp.AddConsumer(sensorConsumer)
	serverApp.AddRunner(sweep.NewRunner(
		sweep.NewReminderSweep(reminders, roomState, producer, clock, cfg),
		cfg.ReminderCadence,
		cfg.Log,
	))
	serverApp.AddRunner(sweep.NewRunner(
		sweep.NewCleanupSweep(reservations, proposals, reminders, clock, cfg),
		cfg.CleanupCadence,
		cfg.Log,
	))
	serverApp.Run()
}
