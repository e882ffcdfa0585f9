package server

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Anjos2/mcp-android-emulator/pkg/adb"
	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
)

type TapInput struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type TapOutput struct {
	Tapped bool `json:"tapped"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
}

func (s *Server) handleTap(ctx context.Context, req *mcp.CallToolRequest, in TapInput) (*mcp.CallToolResult, TapOutput, error) {
	if err := s.device.Tap(in.X, in.Y); err != nil {
		return errorResult("tap failed: %v", err), TapOutput{}, nil
	}
	return nil, TapOutput{Tapped: true, X: in.X, Y: in.Y}, nil
}

type LongPressInput struct {
	X          int `json:"x"`
	Y          int `json:"y"`
	DurationMs int `json:"duration_ms,omitempty"`
}

func (s *Server) handleLongPress(ctx context.Context, req *mcp.CallToolRequest, in LongPressInput) (*mcp.CallToolResult, TapOutput, error) {
	if err := s.device.LongPress(in.X, in.Y, in.DurationMs); err != nil {
		return errorResult("long press failed: %v", err), TapOutput{}, nil
	}
	return nil, TapOutput{Tapped: true, X: in.X, Y: in.Y}, nil
}

type SwipeInput struct {
	X1         int `json:"x1"`
	Y1         int `json:"y1"`
	X2         int `json:"x2"`
	Y2         int `json:"y2"`
	DurationMs int `json:"duration_ms,omitempty"`
}

type SwipeOutput struct {
	Swiped bool `json:"swiped"`
}

func (s *Server) handleSwipe(ctx context.Context, req *mcp.CallToolRequest, in SwipeInput) (*mcp.CallToolResult, SwipeOutput, error) {
	if err := s.device.Swipe(in.X1, in.Y1, in.X2, in.Y2, in.DurationMs); err != nil {
		return errorResult("swipe failed: %v", err), SwipeOutput{}, nil
	}
	return nil, SwipeOutput{Swiped: true}, nil
}

type InputTextInput struct {
	Text string `json:"text"`
}

type InputTextOutput struct {
	Typed bool `json:"typed"`
	Chars int  `json:"chars"`
}

func (s *Server) handleInputText(ctx context.Context, req *mcp.CallToolRequest, in InputTextInput) (*mcp.CallToolResult, InputTextOutput, error) {
	if in.Text == "" {
		return errorResult("text is required"), InputTextOutput{}, nil
	}
	if err := s.device.InputText(in.Text); err != nil {
		return errorResult("input text failed: %v", err), InputTextOutput{}, nil
	}
	return nil, InputTextOutput{Typed: true, Chars: len(in.Text)}, nil
}

type KeyEventInput struct {
	Key string `json:"key"`
}

type KeyEventOutput struct {
	Key  string `json:"key"`
	Code int    `json:"code"`
}

func (s *Server) handleKeyEvent(ctx context.Context, req *mcp.CallToolRequest, in KeyEventInput) (*mcp.CallToolResult, KeyEventOutput, error) {
	code := adb.KeyCode(in.Key)
	if code == 0 {
		return errorResult("unknown key %q", in.Key), KeyEventOutput{}, nil
	}
	if err := s.device.KeyEvent(code); err != nil {
		return errorResult("key event failed: %v", err), KeyEventOutput{}, nil
	}
	return nil, KeyEventOutput{Key: in.Key, Code: code}, nil
}

type ScreenshotInput struct {
	Path string `json:"path"`
}

type ScreenshotOutput struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func (s *Server) handleScreenshot(ctx context.Context, req *mcp.CallToolRequest, in ScreenshotInput) (*mcp.CallToolResult, ScreenshotOutput, error) {
	if in.Path == "" {
		return errorResult("path is required"), ScreenshotOutput{}, nil
	}
	png, err := s.device.Screenshot()
	if err != nil {
		return errorResult("screenshot failed: %v", err), ScreenshotOutput{}, nil
	}
	if err := os.WriteFile(in.Path, png, 0o644); err != nil {
		return errorResult("write %s: %v", in.Path, err), ScreenshotOutput{}, nil
	}
	logger.Info("screenshot saved to %s (%d bytes)", in.Path, len(png))
	return nil, ScreenshotOutput{Path: in.Path, Bytes: len(png)}, nil
}

type SetClipboardInput struct {
	Text string `json:"text"`
}

type SetClipboardOutput struct {
	Stored bool `json:"stored"`
	Chars  int  `json:"chars"`
}

func (s *Server) handleSetClipboard(ctx context.Context, req *mcp.CallToolRequest, in SetClipboardInput) (*mcp.CallToolResult, SetClipboardOutput, error) {
	s.scratch.Set(clipboardKey, in.Text)
	return nil, SetClipboardOutput{Stored: true, Chars: len(in.Text)}, nil
}

type PasteClipboardOutput struct {
	Pasted bool `json:"pasted"`
	Chars  int  `json:"chars"`
}

func (s *Server) handlePasteClipboard(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, PasteClipboardOutput, error) {
	text, ok := s.scratch.Get(clipboardKey)
	if !ok || text == "" {
		return errorResult("clipboard is empty; call set_clipboard first"), PasteClipboardOutput{}, nil
	}
	if err := s.device.InputText(text); err != nil {
		return errorResult("paste failed: %v", err), PasteClipboardOutput{}, nil
	}
	return nil, PasteClipboardOutput{Pasted: true, Chars: len(text)}, nil
}
