package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Anjos2/mcp-android-emulator/pkg/adb"
	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
	"github.com/Anjos2/mcp-android-emulator/pkg/snapshot"
)

type UIDumpInput struct {
	ClickableOnly   bool `json:"clickable_only,omitempty"`
	IncludeDisabled bool `json:"include_disabled,omitempty"`
}

type ElementOut struct {
	Text       string        `json:"text,omitempty"`
	ResourceID string        `json:"resource_id,omitempty"`
	Class      string        `json:"class,omitempty"`
	Bounds     snapshot.Rect `json:"bounds"`
	CenterX    int           `json:"center_x"`
	CenterY    int           `json:"center_y"`
	Clickable  bool          `json:"clickable,omitempty"`
	Focused    bool          `json:"focused,omitempty"`
}

type UIDumpOutput struct {
	Count    int          `json:"count"`
	Elements []ElementOut `json:"elements"`
}

func (s *Server) handleUIDump(ctx context.Context, req *mcp.CallToolRequest, in UIDumpInput) (*mcp.CallToolResult, UIDumpOutput, error) {
	raw, err := s.device.Dump()
	if err != nil {
		return errorResult("ui dump failed: %v", err), UIDumpOutput{}, nil
	}

	elems := []snapshot.Element(snapshot.Parse(raw))
	if in.ClickableOnly {
		elems = snapshot.Clickable(elems)
	}
	if !in.IncludeDisabled {
		elems = snapshot.EnabledOnly(elems)
	}
	elems = snapshot.SortVisual(elems)

	out := UIDumpOutput{Elements: []ElementOut{}}
	for _, el := range elems {
		// Bare containers carry no signal for an agent.
		if el.Text == "" && el.ResourceID == "" && !el.Clickable {
			continue
		}
		cx, cy := el.Bounds.Center()
		out.Elements = append(out.Elements, ElementOut{
			Text:       el.Text,
			ResourceID: el.ResourceID,
			Class:      el.ShortClass(),
			Bounds:     el.Bounds,
			CenterX:    cx,
			CenterY:    cy,
			Clickable:  el.Clickable,
			Focused:    el.Focused,
		})
	}
	out.Count = len(out.Elements)
	logger.Debug("ui_dump: %d elements", out.Count)
	return nil, out, nil
}

type FindElementInput struct {
	Text       string `json:"text,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
	Exact      bool   `json:"exact,omitempty"`
	Index      int    `json:"index,omitempty"`
}

func (in FindElementInput) query() snapshot.Query {
	return snapshot.Query{
		Text:       in.Text,
		ResourceID: in.ResourceID,
		Exact:      in.Exact,
		Index:      in.Index,
	}
}

func (s *Server) handleFindElement(ctx context.Context, req *mcp.CallToolRequest, in FindElementInput) (*mcp.CallToolResult, snapshot.Result, error) {
	raw, err := s.device.Dump()
	if err != nil {
		return errorResult("ui dump failed: %v", err), snapshot.Result{}, nil
	}
	res := snapshot.Locate(snapshot.Parse(raw), in.query())
	return nil, res, nil
}

type TapElementOutput struct {
	Tapped bool `json:"tapped"`
	snapshot.Result
}

func (s *Server) handleTapElement(ctx context.Context, req *mcp.CallToolRequest, in FindElementInput) (*mcp.CallToolResult, TapElementOutput, error) {
	raw, err := s.device.Dump()
	if err != nil {
		return errorResult("ui dump failed: %v", err), TapElementOutput{}, nil
	}
	res := snapshot.Locate(snapshot.Parse(raw), in.query())
	if !res.Found {
		return errorResult("element not found: %s", res.Reason), TapElementOutput{Result: res}, nil
	}
	if err := s.device.Tap(res.CenterX, res.CenterY); err != nil {
		return errorResult("tap failed: %v", err), TapElementOutput{Result: res}, nil
	}
	logger.Info("tapped %q at (%d,%d)", in.Text, res.CenterX, res.CenterY)
	return nil, TapElementOutput{Tapped: true, Result: res}, nil
}

func (s *Server) handleDeviceInfo(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, adb.DeviceInfo, error) {
	return nil, s.device.Info(), nil
}
