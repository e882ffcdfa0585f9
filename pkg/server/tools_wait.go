package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
	"github.com/Anjos2/mcp-android-emulator/pkg/wait"
)

const (
	defaultWaitTimeout  = 10 * time.Second
	defaultScrollTries  = 10
	defaultIdleTimeout  = 10 * time.Second
	defaultIdleInterval = 500 * time.Millisecond
)

type WaitForElementInput struct {
	Text           string  `json:"text"`
	TimeoutSeconds float64 `json:"timeout_seconds,omitempty"`
}

type WaitOutput struct {
	Found     bool  `json:"found"`
	Ticks     int   `json:"ticks"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

func (s *Server) handleWaitForElement(ctx context.Context, req *mcp.CallToolRequest, in WaitForElementInput) (*mcp.CallToolResult, WaitOutput, error) {
	if in.Text == "" {
		return errorResult("text is required"), WaitOutput{}, nil
	}
	timeout := defaultWaitTimeout
	if in.TimeoutSeconds > 0 {
		timeout = time.Duration(in.TimeoutSeconds * float64(time.Second))
	}

	out, err := s.waiter.ForText(in.Text, timeout)
	if err != nil {
		return errorResult("wait failed: %v", err), WaitOutput{}, nil
	}
	if !out.Done {
		logger.Info("wait_for_element %q timed out after %s", in.Text, out.Elapsed)
	}
	return nil, WaitOutput{Found: out.Done, Ticks: out.Ticks, ElapsedMs: out.Elapsed.Milliseconds()}, nil
}

type WaitForElementGoneInput struct {
	Text      string `json:"text"`
	TimeoutMs int    `json:"timeout_ms,omitempty"`
}

type WaitGoneOutput struct {
	Gone      bool  `json:"gone"`
	Ticks     int   `json:"ticks"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

func (s *Server) handleWaitForElementGone(ctx context.Context, req *mcp.CallToolRequest, in WaitForElementGoneInput) (*mcp.CallToolResult, WaitGoneOutput, error) {
	if in.Text == "" {
		return errorResult("text is required"), WaitGoneOutput{}, nil
	}
	timeout := defaultWaitTimeout
	if in.TimeoutMs > 0 {
		timeout = time.Duration(in.TimeoutMs) * time.Millisecond
	}

	out, err := s.waiter.ForTextGone(in.Text, timeout)
	if err != nil {
		return errorResult("wait failed: %v", err), WaitGoneOutput{}, nil
	}
	return nil, WaitGoneOutput{Gone: out.Done, Ticks: out.Ticks, ElapsedMs: out.Elapsed.Milliseconds()}, nil
}

type WaitForIdleInput struct {
	TimeoutMs       int `json:"timeout_ms,omitempty"`
	CheckIntervalMs int `json:"check_interval_ms,omitempty"`
}

type WaitIdleOutput struct {
	Stable    bool  `json:"stable"`
	Ticks     int   `json:"ticks"`
	ElapsedMs int64 `json:"elapsed_ms"`
}

func (s *Server) handleWaitForIdle(ctx context.Context, req *mcp.CallToolRequest, in WaitForIdleInput) (*mcp.CallToolResult, WaitIdleOutput, error) {
	timeout := defaultIdleTimeout
	if in.TimeoutMs > 0 {
		timeout = time.Duration(in.TimeoutMs) * time.Millisecond
	}
	interval := defaultIdleInterval
	if in.CheckIntervalMs > 0 {
		interval = time.Duration(in.CheckIntervalMs) * time.Millisecond
	}

	out, err := s.waiter.ForStable(timeout, interval)
	if err != nil {
		return errorResult("idle wait failed: %v", err), WaitIdleOutput{}, nil
	}
	return nil, WaitIdleOutput{Stable: out.Stable, Ticks: out.Ticks, ElapsedMs: out.Elapsed.Milliseconds()}, nil
}

type ScrollUntilVisibleInput struct {
	Text        string `json:"text"`
	Direction   string `json:"direction,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`
}

func (s *Server) handleScrollUntilVisible(ctx context.Context, req *mcp.CallToolRequest, in ScrollUntilVisibleInput) (*mcp.CallToolResult, wait.ScrollOutcome, error) {
	if in.Text == "" {
		return errorResult("text is required"), wait.ScrollOutcome{}, nil
	}
	attempts := in.MaxAttempts
	if attempts <= 0 {
		attempts = defaultScrollTries
	}

	out, err := s.waiter.ScrollUntilVisible(in.Text, in.Direction, attempts)
	if err != nil {
		return errorResult("scroll failed: %v", err), wait.ScrollOutcome{}, nil
	}
	return nil, out, nil
}
