package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Anjos2/mcp-android-emulator/pkg/logger"
)

type PackageInput struct {
	Package string `json:"package"`
}

type PackageOutput struct {
	Package string `json:"package"`
	Done    bool   `json:"done"`
}

func (s *Server) handleLaunchApp(ctx context.Context, req *mcp.CallToolRequest, in PackageInput) (*mcp.CallToolResult, PackageOutput, error) {
	if in.Package == "" {
		return errorResult("package is required"), PackageOutput{}, nil
	}
	if err := s.device.LaunchApp(in.Package); err != nil {
		return errorResult("launch %s: %v", in.Package, err), PackageOutput{}, nil
	}
	logger.Info("launched %s", in.Package)
	return nil, PackageOutput{Package: in.Package, Done: true}, nil
}

func (s *Server) handleForceStop(ctx context.Context, req *mcp.CallToolRequest, in PackageInput) (*mcp.CallToolResult, PackageOutput, error) {
	if in.Package == "" {
		return errorResult("package is required"), PackageOutput{}, nil
	}
	if err := s.device.ForceStop(in.Package); err != nil {
		return errorResult("force-stop %s: %v", in.Package, err), PackageOutput{}, nil
	}
	return nil, PackageOutput{Package: in.Package, Done: true}, nil
}

func (s *Server) handleClearAppData(ctx context.Context, req *mcp.CallToolRequest, in PackageInput) (*mcp.CallToolResult, PackageOutput, error) {
	if in.Package == "" {
		return errorResult("package is required"), PackageOutput{}, nil
	}
	if err := s.device.ClearAppData(in.Package); err != nil {
		return errorResult("clear data for %s: %v", in.Package, err), PackageOutput{}, nil
	}
	return nil, PackageOutput{Package: in.Package, Done: true}, nil
}

type InstallAPKInput struct {
	Path string `json:"path"`
}

type InstallAPKOutput struct {
	Path      string `json:"path"`
	Installed bool   `json:"installed"`
}

func (s *Server) handleInstallAPK(ctx context.Context, req *mcp.CallToolRequest, in InstallAPKInput) (*mcp.CallToolResult, InstallAPKOutput, error) {
	if in.Path == "" {
		return errorResult("path is required"), InstallAPKOutput{}, nil
	}
	if err := s.device.Install(in.Path); err != nil {
		return errorResult("install %s: %v", in.Path, err), InstallAPKOutput{}, nil
	}
	logger.Info("installed %s", in.Path)
	return nil, InstallAPKOutput{Path: in.Path, Installed: true}, nil
}

type ListPackagesInput struct {
	Filter string `json:"filter,omitempty"`
}

type ListPackagesOutput struct {
	Count    int      `json:"count"`
	Packages []string `json:"packages"`
}

func (s *Server) handleListPackages(ctx context.Context, req *mcp.CallToolRequest, in ListPackagesInput) (*mcp.CallToolResult, ListPackagesOutput, error) {
	pkgs, err := s.device.ListPackages(in.Filter)
	if err != nil {
		return errorResult("list packages: %v", err), ListPackagesOutput{}, nil
	}
	if pkgs == nil {
		pkgs = []string{}
	}
	return nil, ListPackagesOutput{Count: len(pkgs), Packages: pkgs}, nil
}

type SetOrientationInput struct {
	Orientation string `json:"orientation"`
}

type SetOrientationOutput struct {
	Orientation string `json:"orientation"`
	Done        bool   `json:"done"`
}

func (s *Server) handleSetOrientation(ctx context.Context, req *mcp.CallToolRequest, in SetOrientationInput) (*mcp.CallToolResult, SetOrientationOutput, error) {
	if in.Orientation == "" {
		return errorResult("orientation is required"), SetOrientationOutput{}, nil
	}
	if err := s.device.SetOrientation(in.Orientation); err != nil {
		return errorResult("set orientation: %v", err), SetOrientationOutput{}, nil
	}
	return nil, SetOrientationOutput{Orientation: in.Orientation, Done: true}, nil
}
