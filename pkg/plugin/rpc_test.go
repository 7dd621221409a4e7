package plugin

import (
	"context"
	"errors"
	"net"
	"net/rpc"
	"testing"
	"time"
)

type mockExportPlugin struct {
	files       map[string][]byte
	metadata    PluginInfo
	generateErr error
	block       chan struct{}
	lastPalette PaletteData
}

func (m *mockExportPlugin) Generate(_ context.Context, palette PaletteData) (map[string][]byte, error) {
	if m.block != nil {
		<-m.block
	}
	m.lastPalette = palette
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return m.files, nil
}

func (m *mockExportPlugin) GetMetadata() PluginInfo {
	return m.metadata
}

func testPalette() PaletteData {
	return PaletteData{
		Primary:   "#4f46e5",
		Secondary: "#dce546",
		Harmony:   "complementary",
		PrimaryShades: []Shade{
			{Label: 50, Hex: "#dbd9fa"},
			{Label: 500, Hex: "#4f46e5"},
		},
		SecondaryShades: []Shade{
			{Label: 500, Hex: "#dce546"},
		},
	}
}

// newRPCPair serves impl over an in-memory connection and returns a client.
func newRPCPair(t *testing.T, impl ExportPlugin) *ExportPluginRPCClient {
	t.Helper()

	server := rpc.NewServer()
	if err := server.RegisterName("Plugin", &ExportPluginRPCServer{Impl: impl}); err != nil {
		t.Fatalf("RegisterName() error = %v", err)
	}

	serverConn, clientConn := net.Pipe()
	go server.ServeConn(serverConn)

	client := rpc.NewClient(clientConn)
	t.Cleanup(func() { client.Close() })

	raw, err := (&ExportPluginRPC{}).Client(nil, client)
	if err != nil {
		t.Fatalf("Client() error = %v", err)
	}
	return raw.(*ExportPluginRPCClient)
}

// TestExportPluginRPC tests the export plugin RPC wrapper.
func TestExportPluginRPC(t *testing.T) {
	mock := &mockExportPlugin{}
	wrapper := &ExportPluginRPC{Impl: mock}

	t.Run("Server", func(t *testing.T) {
		server, err := wrapper.Server(nil)
		if err != nil {
			t.Fatalf("Server() error = %v", err)
		}

		rpcServer, ok := server.(*ExportPluginRPCServer)
		if !ok {
			t.Fatal("Server() returned wrong type")
		}
		if rpcServer.Impl != mock {
			t.Fatal("Server() impl not set correctly")
		}
	})

	t.Run("Client", func(t *testing.T) {
		client, err := wrapper.Client(nil, nil)
		if err != nil {
			t.Fatalf("Client() error = %v", err)
		}
		if client == nil {
			t.Fatal("Client() returned nil client")
		}
	})
}

// TestExportPluginRoundTrip drives the client and server over a real net/rpc connection.
func TestExportPluginRoundTrip(t *testing.T) {
	mock := &mockExportPlugin{
		files: map[string][]byte{"palette.scss": []byte("$primary-500: #4f46e5;\n")},
		metadata: PluginInfo{
			Name:            "scss",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			PluginProtocol:  string(PluginTypeGoPlugin),
		},
	}
	client := newRPCPair(t, mock)

	t.Run("Generate", func(t *testing.T) {
		files, err := client.Generate(context.Background(), testPalette())
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if got := string(files["palette.scss"]); got != "$primary-500: #4f46e5;\n" {
			t.Errorf("Generate() palette.scss = %q", got)
		}
		if mock.lastPalette.Secondary != "#dce546" {
			t.Errorf("plugin received secondary %q, want #dce546", mock.lastPalette.Secondary)
		}
		if len(mock.lastPalette.PrimaryShades) != 2 {
			t.Errorf("plugin received %d primary shades, want 2", len(mock.lastPalette.PrimaryShades))
		}
	})

	t.Run("GetMetadata", func(t *testing.T) {
		info, err := client.GetMetadata()
		if err != nil {
			t.Fatalf("GetMetadata() error = %v", err)
		}
		if info.Name != "scss" {
			t.Errorf("GetMetadata() name = %q, want %q", info.Name, "scss")
		}
	})
}

func TestExportPluginRoundTripError(t *testing.T) {
	client := newRPCPair(t, &mockExportPlugin{generateErr: errors.New("template missing")})

	_, err := client.Generate(context.Background(), testPalette())
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("Generate() error = %v, want *RPCError", err)
	}
	if rpcErr.Message != "template missing" {
		t.Errorf("RPCError.Message = %q, want %q", rpcErr.Message, "template missing")
	}
}

func TestExportPluginGenerateCancelled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	client := newRPCPair(t, &mockExportPlugin{block: block})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Generate(ctx, testPalette()); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Generate() error = %v, want context.DeadlineExceeded", err)
	}
}

// TestRPCError tests the RPCError type.
func TestRPCError(t *testing.T) {
	err := &RPCError{Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("RPCError.Error() = %q, want %q", err.Error(), "test error")
	}
}
