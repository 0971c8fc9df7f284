package config

import "time"

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
	}
}

// NewGatewayForTest creates a Gateway config for testing purposes
func NewGatewayForTest(backend, baseURL string, retry int) *Gateway {
	return &Gateway{
		backend:       backend,
		baseURL:       baseURL,
		environment:   "TEST",
		timeout:       time.Second,
		retryAttempts: retry,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewAppForTest creates an App config for testing purposes
func NewAppForTest(path string) *App {
	return &App{path: path}
}
