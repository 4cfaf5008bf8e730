package bootstrap

import (
	"context"
	"log/slog"

	"github.com/pondkeeper/pondkeeper/internal/database"
	"github.com/pondkeeper/pondkeeper/internal/push"
	"github.com/pondkeeper/pondkeeper/internal/scheduler"
	"github.com/pondkeeper/pondkeeper/internal/server"
	"github.com/pondkeeper/pondkeeper/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server      *server.Server
	Scheduler   *scheduler.Scheduler
	WorkerPool  *worker.Pool
	RelayClient *push.Client
	DBPool      database.Pool
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop enqueuing new background jobs)
// 3. Worker pool (drain in-flight jobs)
// 4. Relay client and database pool (close external connections)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	// Stop the scheduler before the pool so no new jobs are enqueued
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.RelayClient != nil {
		components.RelayClient.Stop()
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
