package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
	originalLogger *zap.Logger
	observedLogs   *observer.ObservedLogs
}

func (suite *LoggerTestSuite) SetupSuite() {
	suite.originalLogger = zap.L()
}

func (suite *LoggerTestSuite) TearDownSuite() {
	zap.ReplaceGlobals(suite.originalLogger)
}

func (suite *LoggerTestSuite) SetupTest() {
	core, logs := observer.New(zap.DebugLevel)
	suite.observedLogs = logs
	zap.ReplaceGlobals(zap.New(core))
}

func (suite *LoggerTestSuite) TestGetLogLevelFromString() {
	testCases := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{"debug lowercase", "debug", zapcore.DebugLevel},
		{"info mixed case", "Info", zapcore.InfoLevel},
		{"warn uppercase", "WARN", zapcore.WarnLevel},
		{"error short", "err", zapcore.ErrorLevel},
		{"warning full", "warning", zapcore.WarnLevel},
		{"with whitespace", "  debug  ", zapcore.DebugLevel},
		{"fatal", "fatal", zapcore.FatalLevel},
		{"empty defaults to info", "", zapcore.InfoLevel},
		{"invalid defaults to info", "verbose", zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.expected, getLogLevelFromString(tc.input))
		})
	}
}

func (suite *LoggerTestSuite) TestInit() {
	testCases := []struct {
		name   string
		config *Config
	}{
		{"json to stderr", &Config{Level: "info", Env: "test", ServiceName: "bm-social"}},
		{"console encoding", &Config{Level: "debug", Env: "development", ServiceName: "bm-social", Encoding: "console"}},
		{"empty config", &Config{}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			require.NoError(suite.T(), Init(tc.config))
			require.NotPanics(suite.T(), func() {
				LogInfo("test message")
			})
		})
	}
}

func (suite *LoggerTestSuite) TestInitRejectsUnknownEncoding() {
	err := Init(&Config{Encoding: "yaml"})
	assert.Error(suite.T(), err)
}

func (suite *LoggerTestSuite) TestLoggingFunctions() {
	testCases := []struct {
		name    string
		logFunc func()
		level   zapcore.Level
		message string
	}{
		{"LogDebug", func() { LogDebug("debug message") }, zapcore.DebugLevel, "debug message"},
		{"LogInfo", func() { LogInfo("info message") }, zapcore.InfoLevel, "info message"},
		{"LogWarn", func() { LogWarn("warn message") }, zapcore.WarnLevel, "warn message"},
		{"LogError", func() { LogError("error message") }, zapcore.ErrorLevel, "error message"},
		{"LogInfof with args", func() { LogInfof("post %d created by %s", 7, "ana") }, zapcore.InfoLevel, "post 7 created by ana"},
		{"LogWarnf without args", func() { LogWarnf("signout failed") }, zapcore.WarnLevel, "signout failed"},
		{"LogErrorf with args", func() { LogErrorf("delete %d: %v", 3, "boom") }, zapcore.ErrorLevel, "delete 3: boom"},
		{"LogDebugf with args", func() { LogDebugf("preview %s", "blob:x") }, zapcore.DebugLevel, "preview blob:x"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.observedLogs.TakeAll()

			tc.logFunc()

			logs := suite.observedLogs.All()
			require.Len(suite.T(), logs, 1)
			assert.Equal(suite.T(), tc.level, logs[0].Level)
			assert.Equal(suite.T(), tc.message, logs[0].Message)
		})
	}
}

func (suite *LoggerTestSuite) TestLoggingWithFields() {
	LogInfo("post created", zap.Int64("post_id", 12), zap.String("media_type", "IMAGE"))

	logs := suite.observedLogs.All()
	require.Len(suite.T(), logs, 1)

	fields := logs[0].ContextMap()
	assert.Equal(suite.T(), int64(12), fields["post_id"])
	assert.Equal(suite.T(), "IMAGE", fields["media_type"])
}

func TestLoggerTestSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
