package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "huddle"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultRoomID   = "room-1d"
	DefaultRoomName = "Room 1D"
	DefaultRoomType = "Conference Room"
	DefaultLogLevel = "info"
	DefaultTimezone = "Europe/Amsterdam"

	// Operating hours: bookings may start between 08:00 and 18:00.
	DefaultFirstSlotStart  = 8 * 60
	DefaultLastSlotStart   = 18 * 60
	DefaultMinSlotDuration = 15
	DefaultDefaultDuration = 30

	// Day-part starts used by the chat "this morning/lunchtime/afternoon"
	// modifiers.
	MorningStart   = 8 * 60
	LunchtimeStart = 11*60 + 30
	AfternoonStart = 12 * 60

	DefaultReminderLead    = 15 * time.Minute
	DefaultReminderCadence = 15 * time.Minute
	DefaultCleanupCadence  = 24 * time.Hour

	DefaultInstantDuration  = 30
	DefaultAbandonedGrace   = 10
	DefaultStartsSoonLead   = 15
	DefaultTempLow          = 18.0
	DefaultTempHigh         = 25.0
	DefaultLightLow         = 490.0
	DefaultLightHigh        = 650.0
	DefaultCurrentAvgWindow = 10

	DefaultSensorTopic       = "room.sensor.readings"
	DefaultChatInboundTopic  = "room.chat.inbound"
	DefaultChatOutboundTopic = "room.chat.outbound"
	DefaultChatDLQTopic      = "room.chat.inbound.dlq"
	DefaultChatGroupID       = "huddle"

	DefaultRequestTimeout  = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// WalkInBookerID owns bookings made from the room display, where no
	// chat identity is available.
	WalkInBookerID = "walk-in"

	UnnamedMeetingName = "Unnamed Meeting"
	InstantMeetingName = "Impromptu Meeting"
	DefaultAttendees   = 1

	// Comfort suffixes appended to reminders and status replies when the
	// temperature crosses a threshold.
	LowTempMessage  = "I'm a bit chilly! So you might want to bring a sweater"
	HighTempMessage = "I'm hot! So you might want to open a window"
)
