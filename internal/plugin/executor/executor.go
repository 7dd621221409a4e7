// Package executor runs external export plugins regardless of their
// underlying protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/shadecraft/pkg/plugin"
)

// infoTimeout bounds the --plugin-info query.
const infoTimeout = 5 * time.Second

// fallbackFile names the output of a JSON-stdio plugin that does not reply
// with a filename map.
const fallbackFile = "output.txt"

// Executor runs one external export plugin binary.
type Executor struct {
	path         string
	info         plugin.PluginInfo
	protocolType plugin.PluginType
	runner       ProcessRunner
	logger       hclog.Logger

	client    *goplugin.Client
	rpcClient *plugin.ExportPluginRPCClient
}

// New queries the plugin at path and returns an executor for it.
func New(ctx context.Context, path string, logger hclog.Logger) (*Executor, error) {
	return NewWithRunner(ctx, path, logger, NewRealProcessRunner())
}

// NewWithRunner is New with a custom process runner.
func NewWithRunner(ctx context.Context, path string, logger hclog.Logger, runner ProcessRunner) (*Executor, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	info, err := queryInfo(ctx, runner, path)
	if err != nil {
		return nil, err
	}

	e := &Executor{
		path:   path,
		info:   info,
		runner: runner,
		logger: logger.With("plugin", path),
	}

	switch info.PluginProtocol {
	case string(plugin.PluginTypeGoPlugin):
		e.protocolType = plugin.PluginTypeGoPlugin
	case string(plugin.PluginTypeJSON), "":
		// Empty defaults to json-stdio.
		e.protocolType = plugin.PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	if info.ProtocolVersion != "" {
		if ok, err := plugin.IsCompatible(info.ProtocolVersion); !ok {
			return nil, fmt.Errorf("plugin %s: %w", path, err)
		}
	}

	e.logger.Debug("plugin detected", "name", info.Name, "protocol", e.protocolType, "version", info.Version)
	return e, nil
}

func queryInfo(ctx context.Context, runner ProcessRunner, path string) (plugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, infoTimeout)
	defer cancel()

	stdout, stderr, err := runner.Run(ctx, path, []string{"--plugin-info"}, nil)
	if err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to query plugin %s: %w%s", path, err, stderrSuffix(stderr))
	}

	var info plugin.PluginInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to parse plugin info from %s: %w", path, err)
	}
	return info, nil
}

// Info returns the metadata the plugin reported.
func (e *Executor) Info() plugin.PluginInfo {
	return e.info
}

// Protocol returns the protocol the plugin speaks.
func (e *Executor) Protocol() plugin.PluginType {
	return e.protocolType
}

// Execute sends the palette to the plugin and returns the files it generated.
func (e *Executor) Execute(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	switch e.protocolType {
	case plugin.PluginTypeGoPlugin:
		return e.executeGoPlugin(ctx, palette)
	case plugin.PluginTypeJSON:
		return e.executeJSON(ctx, palette)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// Close stops the plugin process if one is running.
func (e *Executor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// --- Go-Plugin RPC implementation ---

func (e *Executor) getRPCClient() (*plugin.ExportPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: plugin.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.PluginName: &plugin.ExportPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger.Named("go-plugin"),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginName)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.ExportPluginRPCClient)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("unexpected plugin client type %T", raw)
	}
	e.rpcClient = client

	return client, nil
}

func (e *Executor) executeGoPlugin(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	client, err := e.getRPCClient()
	if err != nil {
		return nil, err
	}

	files, err := client.Generate(ctx, palette)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.Close()
		}
		return nil, err
	}
	return files, nil
}

// --- JSON-stdio implementation ---

func (e *Executor) executeJSON(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	paletteJSON, err := json.Marshal(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(paletteJSON))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("plugin execution interrupted: %w", ctxErr)
		}
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	// A JSON object of filename -> content names the files; anything else is
	// written to a single fallback file.
	var named map[string]string
	if err := json.Unmarshal(stdout, &named); err == nil && len(named) > 0 {
		files := make(map[string][]byte, len(named))
		for name, content := range named {
			files[name] = []byte(content)
		}
		return files, nil
	}

	files := make(map[string][]byte)
	if len(stdout) > 0 {
		files[fallbackFile] = stdout
	}
	return files, nil
}

func stderrSuffix(stderr []byte) string {
	msg := bytes.TrimSpace(stderr)
	if len(msg) == 0 {
		return ""
	}
	return fmt.Sprintf("\nStderr: %s", msg)
}
