package config

import "time"

// WorkflowConfig owns the timeout and retry policy for every backend call
// site. The adapters themselves never set deadlines or retry.
type WorkflowConfig struct {
	CallTimeout    time.Duration
	RequestRetries int
	RetryBackoff   time.Duration
}

func GetWorkflowConfig() (*WorkflowConfig, error) {
	timeoutSeconds, err := envIntOr("CALL_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	retries, err := envIntOr("REQUEST_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	backoffMs, err := envIntOr("RETRY_BACKOFF_MS", 500)
	if err != nil {
		return nil, err
	}

	return &WorkflowConfig{
		CallTimeout:    time.Duration(timeoutSeconds) * time.Second,
		RequestRetries: retries,
		RetryBackoff:   time.Duration(backoffMs) * time.Millisecond,
	}, nil
}
