package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"huddle/pkg/client"
	"huddle/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RoomID   string
	RoomName string
	RoomType string

	// Location interprets (day, minute) pairs; storage and comparison stay
	// in UTC.
	TimezoneName string
	Location     *time.Location

	FirstSlotStart  int
	LastSlotStart   int
	MinSlotDuration int
	DefaultDuration int

	ReminderLead    time.Duration
	ReminderCadence time.Duration
	CleanupCadence  time.Duration

	InstantDuration  int
	AbandonedGrace   int
	StartsSoonLead   int
	TempLow          float64
	TempHigh         float64
	LightLow         float64
	LightHigh        float64
	CurrentAvgWindow int

	SensorTopic       string
	ChatInboundTopic  string
	ChatOutboundTopic string
	ChatDLQTopic      string
	ChatGroupID       string

	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port:         getEnvStr(EnvPort, DefaultPort),
		RoomID:       getEnvStr(EnvRoomID, DefaultRoomID),
		RoomName:     getEnvStr(EnvRoomName, DefaultRoomName),
		RoomType:     getEnvStr(EnvRoomType, DefaultRoomType),
		TimezoneName: getEnvStr(EnvTimezone, DefaultTimezone),

		FirstSlotStart:  getEnvNum(EnvFirstSlotStart, DefaultFirstSlotStart),
		LastSlotStart:   getEnvNum(EnvLastSlotStart, DefaultLastSlotStart),
		MinSlotDuration: getEnvNum(EnvMinSlotDuration, DefaultMinSlotDuration),
		DefaultDuration: getEnvNum(EnvDefaultDuration, DefaultDefaultDuration),

		ReminderLead:    getEnvDuration(EnvReminderLead, DefaultReminderLead),
		ReminderCadence: getEnvDuration(EnvReminderCadence, DefaultReminderCadence),
		CleanupCadence:  getEnvDuration(EnvCleanupCadence, DefaultCleanupCadence),

		InstantDuration:  getEnvNum(EnvInstantDuration, DefaultInstantDuration),
		AbandonedGrace:   getEnvNum(EnvAbandonedGrace, DefaultAbandonedGrace),
		StartsSoonLead:   getEnvNum(EnvStartsSoonLead, DefaultStartsSoonLead),
		TempLow:          getEnvFloat(EnvTempLow, DefaultTempLow),
		TempHigh:         getEnvFloat(EnvTempHigh, DefaultTempHigh),
		LightLow:         getEnvFloat(EnvLightLow, DefaultLightLow),
		LightHigh:        getEnvFloat(EnvLightHigh, DefaultLightHigh),
		CurrentAvgWindow: getEnvNum(EnvCurrentAvgWindow, DefaultCurrentAvgWindow),

		SensorTopic:       getEnvStr(EnvSensorTopic, DefaultSensorTopic),
		ChatInboundTopic:  getEnvStr(EnvChatInboundTopic, DefaultChatInboundTopic),
		ChatOutboundTopic: getEnvStr(EnvChatOutboundTopic, DefaultChatOutboundTopic),
		ChatDLQTopic:      getEnvStr(EnvChatDLQTopic, DefaultChatDLQTopic),
		ChatGroupID:       getEnvStr(EnvChatGroupID, DefaultChatGroupID),

		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		cfg.Log.Fatal("Invalid timezone", "timezone", cfg.TimezoneName, "error", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.MinSlotDuration <= 0 || cfg.MinSlotDuration%15 != 0 {
		errors = append(errors, fmt.Sprintf("MinSlotDuration must be a positive multiple of 15, got: %d", cfg.MinSlotDuration))
	}
	if cfg.DefaultDuration < cfg.MinSlotDuration {
		errors = append(errors, fmt.Sprintf("DefaultDuration (%d) must be >= MinSlotDuration (%d)", cfg.DefaultDuration, cfg.MinSlotDuration))
	}
	if cfg.FirstSlotStart < 0 || cfg.FirstSlotStart >= 24*60 {
		errors = append(errors, fmt.Sprintf("FirstSlotStart must be a minute of day, got: %d", cfg.FirstSlotStart))
	}
	if cfg.LastSlotStart <= cfg.FirstSlotStart || cfg.LastSlotStart >= 24*60 {
		errors = append(errors, fmt.Sprintf("LastSlotStart (%d) must be after FirstSlotStart (%d) and within the day", cfg.LastSlotStart, cfg.FirstSlotStart))
	}
	if cfg.InstantDuration < cfg.MinSlotDuration {
		errors = append(errors, fmt.Sprintf("InstantDuration (%d) must be >= MinSlotDuration (%d)", cfg.InstantDuration, cfg.MinSlotDuration))
	}

	if cfg.ReminderLead <= 0 {
		errors = append(errors, fmt.Sprintf("ReminderLead must be positive, got: %s", cfg.ReminderLead))
	}
	if cfg.ReminderCadence <= 0 {
		errors = append(errors, fmt.Sprintf("ReminderCadence must be positive, got: %s", cfg.ReminderCadence))
	}
	if cfg.CleanupCadence <= 0 {
		errors = append(errors, fmt.Sprintf("CleanupCadence must be positive, got: %s", cfg.CleanupCadence))
	}

	if cfg.TempHigh <= cfg.TempLow {
		errors = append(errors, fmt.Sprintf("TempHigh (%.1f) must be > TempLow (%.1f)", cfg.TempHigh, cfg.TempLow))
	}
	if cfg.LightHigh <= cfg.LightLow {
		errors = append(errors, fmt.Sprintf("LightHigh (%.0f) must be > LightLow (%.0f)", cfg.LightHigh, cfg.LightLow))
	}
	if cfg.CurrentAvgWindow <= 0 {
		errors = append(errors, fmt.Sprintf("CurrentAvgWindow must be positive, got: %d", cfg.CurrentAvgWindow))
	}

	if cfg.SensorTopic == "" {
		errors = append(errors, "SensorTopic cannot be empty")
	}
	if cfg.ChatInboundTopic == "" || cfg.ChatOutboundTopic == "" {
		errors = append(errors, "Chat topics cannot be empty")
	}
	if cfg.ChatGroupID == "" {
		errors = append(errors, "ChatGroupID cannot be empty")
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"timezone", cfg.TimezoneName,
		"first_slot_start", cfg.FirstSlotStart,
		"last_slot_start", cfg.LastSlotStart,
		"min_slot_duration", cfg.MinSlotDuration,
		"default_duration", cfg.DefaultDuration,
		"reminder_lead", cfg.ReminderLead,
		"reminder_cadence", cfg.ReminderCadence,
		"cleanup_cadence", cfg.CleanupCadence,
		"instant_duration", cfg.InstantDuration,
		"chat_inbound_topic", cfg.ChatInboundTopic,
		"chat_outbound_topic", cfg.ChatOutboundTopic,
		"chat_group_id", cfg.ChatGroupID,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
