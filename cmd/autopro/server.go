package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/autopro/internal/api"
	"github.com/kalambet/autopro/internal/catalog"
	"github.com/kalambet/autopro/internal/config"
	"github.com/kalambet/autopro/internal/preferences"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/session"
	"github.com/kalambet/autopro/internal/storage"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the autopro server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		withMCP, _ := cmd.Flags().GetBool("mcp")
		return runServer(cmd.Context(), withMCP)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running autopro server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show autopro server status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus(cmd.Context())
	},
}

func init() {
	startCmd.Flags().Bool("mcp", false, "also serve MCP over stdio (overrides server.mcp)")
}

// pidFile records the PID of a foreground server so stop can signal it.
type pidFile string

func pidFileIn(dataDir string) pidFile {
	return pidFile(filepath.Join(dataDir, "autopro.pid"))
}

func (p pidFile) write() error {
	if err := os.MkdirAll(filepath.Dir(string(p)), 0o755); err != nil {
		return err
	}
	return os.WriteFile(string(p), []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func (p pidFile) read() (int, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func (p pidFile) remove() {
	os.Remove(string(p))
}

// alreadyRunning reports an error when something answers /health on port.
func alreadyRunning(port int, pids pidFile) error {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	if err != nil {
		return nil
	}
	resp.Body.Close()
	if pid, err := pids.read(); err == nil {
		printWarning("autopro is already running (PID %d)", pid)
		return fmt.Errorf("server already running (PID %d)", pid)
	}
	printWarning("autopro is already running on port %d", port)
	return fmt.Errorf("server already running on port %d", port)
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func runServer(parent context.Context, withMCP bool) error {
	fmt.Fprintf(os.Stderr, "autopro version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	withMCP = withMCP || cfg.Server.MCP

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)})))

	pids := pidFileIn(cfg.Storage.DataDir)
	if err := alreadyRunning(cfg.Server.Port, pids); err != nil {
		return err
	}
	if err := pids.write(); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer pids.remove()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	sessions := session.NewManager(store, cfg.Auth.Delay)
	if err := sessions.Restore(); err != nil {
		// Start signed out; the catalog works without an account.
		slog.Warn("could not restore session", "error", err)
	}

	cat := catalog.Default()
	defaultSort := search.SortKey(cfg.Search.DefaultSort)

	appHandler := api.NewAppHandler(api.AppDeps{
		Catalog:     cat,
		Session:     sessions,
		Preferences: preferences.New(store),
		Storage:     store,
		DefaultSort: defaultSort,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           appHandler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Fprintf(os.Stderr, "autopro listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if withMCP {
		mcpSrv := api.NewMCPServer(api.MCPDeps{
			Catalog:     cat,
			Session:     sessions,
			DefaultSort: defaultSort,
		}, version)
		g.Go(func() error {
			slog.Info("MCP server started (stdio transport)")
			err := server.NewStdioServer(mcpSrv).Listen(gctx, os.Stdin, os.Stdout)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("MCP stdio server: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pids := pidFileIn(cfg.Storage.DataDir)
	pid, err := pids.read()
	if err != nil {
		printError("autopro is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop autopro (PID %d): %v", pid, err)
		pids.remove()
		return err
	}

	printSuccess("Sent stop signal to autopro (PID %d)", pid)
	return nil
}

func showStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		// Still show partial status even if config fails.
		printError("config error: %v", err)
		return nil
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}
	client.httpClient.Timeout = 2 * time.Second

	resp, err := client.get(ctx, "/health")
	if err != nil {
		printStatus("Server", "stopped")
		printStatus("Data dir", "%s", cfg.Storage.DataDir)
		return nil
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		return nil
	}
	printStatus("Server", "running at %s", client.baseURL)

	var acct api.Account
	if resp, err := client.get(ctx, "/account"); err == nil {
		if decodeJSON(resp, &acct) == nil {
			printStatus("Account", "%s <%s>", acct.User.Name, acct.User.Email)
			printStatus("Saved", "%s, %s, %s",
				countLabel(len(acct.Configurations), "configuration"),
				countLabel(len(acct.Filters), "search"),
				countLabel(len(acct.Orders), "order"))
		} else {
			printStatus("Account", "signed out")
		}
	}

	var lang api.LanguageResponse
	if resp, err := client.get(ctx, "/preferences/language"); err == nil && decodeJSON(resp, &lang) == nil {
		printStatus("Language", "%s (%s)", lang.Language.Name, lang.Language.Code)
	}

	var entries []storage.Entry
	if resp, err := client.get(ctx, "/storage"); err == nil && decodeJSON(resp, &entries) == nil {
		printStatus("Stored", "%s", storedKeys(entries))
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}

func storedKeys(entries []storage.Entry) string {
	if len(entries) == 0 {
		return "nothing"
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return strings.Join(keys, ", ")
}

func countLabel(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "h") {
		return fmt.Sprintf("%d %ses", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
