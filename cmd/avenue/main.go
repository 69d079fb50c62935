// Command avenue is the terminal client for the Article Avenue
// blogging platform.
package main

import (
	"fmt"
	"os"

	"github.com/article-avenue/avenue-cli/internal/adapters/driven/backend"
	"github.com/article-avenue/avenue-cli/internal/adapters/driven/config/file"
	"github.com/article-avenue/avenue-cli/internal/adapters/driven/storage/memory"
	"github.com/article-avenue/avenue-cli/internal/adapters/driven/storage/sqlite"
	"github.com/article-avenue/avenue-cli/internal/adapters/driving/cli"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/core/services"
	"github.com/article-avenue/avenue-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	origin := configStore.GetString(file.KeyBackendOrigin)
	if origin == "" {
		origin = backend.DefaultBaseURL
	}

	jar, err := backend.NewPersistentJar("", origin)
	if err != nil {
		return fmt.Errorf("opening cookie store: %w", err)
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: origin,
		Jar:     jar,
	})
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}

	// The sqlite workspace keeps unsaved editing sessions across runs.
	// Fall back to an in-process store when the database can't open.
	var workspaceStore driven.WorkspaceStore
	if store, err := sqlite.NewStore(""); err == nil {
		workspaceStore = store
	} else {
		logger.Warn("workspace database unavailable, autosave is in-memory only: %v", err)
		workspaceStore = memory.NewWorkspaceStore()
	}

	sessionService := services.NewSessionService(client)
	cli.SetServices(cli.Services{
		Session:   sessionService,
		Article:   services.NewArticleService(client, sessionService, workspaceStore),
		Feed:      services.NewFeedService(client, sessionService),
		Author:    services.NewAuthorService(client, sessionService),
		Workspace: services.NewWorkspaceService(workspaceStore),
		Config:    configStore,
	})

	return cli.Execute()
}
