package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvRoomID   = "ROOM_ID"
	EnvRoomName = "ROOM_NAME"
	EnvRoomType = "ROOM_TYPE"
	EnvLogLevel = "LOG_LEVEL"
	EnvTimezone = "ROOM_TIMEZONE"

	EnvFirstSlotStart  = "FIRST_SLOT_START_MIN"
	EnvLastSlotStart   = "LAST_SLOT_START_MIN"
	EnvMinSlotDuration = "MIN_SLOT_DURATION_MIN"
	EnvDefaultDuration = "DEFAULT_REQUEST_DURATION_MIN"

	EnvReminderLead     = "REMINDER_LEAD"
	EnvReminderCadence  = "REMINDER_SWEEP_CADENCE"
	EnvCleanupCadence   = "CLEANUP_SWEEP_CADENCE"
	EnvInstantDuration  = "INSTANT_BOOKING_DURATION_MIN"
	EnvAbandonedGrace   = "ABANDONED_GRACE_MIN"
	EnvStartsSoonLead   = "STARTS_SOON_LEAD_MIN"
	EnvTempLow          = "TEMP_THRESHOLD_LOW_C"
	EnvTempHigh         = "TEMP_THRESHOLD_HIGH_C"
	EnvLightLow         = "LIGHT_THRESHOLD_LOW"
	EnvLightHigh        = "LIGHT_THRESHOLD_HIGH"
	EnvCurrentAvgWindow = "CURRENT_AVG_WINDOW"

	EnvSensorTopic       = "SENSOR_READINGS_TOPIC"
	EnvChatInboundTopic  = "CHAT_INBOUND_TOPIC"
	EnvChatOutboundTopic = "CHAT_OUTBOUND_TOPIC"
	EnvChatDLQTopic      = "CHAT_DLQ_TOPIC"
	EnvChatGroupID       = "CHAT_CONSUMER_GROUP"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
