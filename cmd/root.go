/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/nuts-foundation/nuts-siga/container"
	containerAPI "github.com/nuts-foundation/nuts-siga/container/api/v1"
	"github.com/nuts-foundation/nuts-siga/core"
	"github.com/nuts-foundation/nuts-siga/core/status"
	httpEngine "github.com/nuts-foundation/nuts-siga/http"
	httpCmd "github.com/nuts-foundation/nuts-siga/http/cmd"
	"github.com/nuts-foundation/nuts-siga/reprocessing"
	reprocessingCmd "github.com/nuts-foundation/nuts-siga/reprocessing/cmd"
	"github.com/nuts-foundation/nuts-siga/signing"
	signingAPI "github.com/nuts-foundation/nuts-siga/signing/api/v1"
	signingCmd "github.com/nuts-foundation/nuts-siga/signing/cmd"
	"github.com/nuts-foundation/nuts-siga/storage"
	storageCmd "github.com/nuts-foundation/nuts-siga/storage/cmd"
	"github.com/nuts-foundation/nuts-siga/tracing"
	tracingCmd "github.com/nuts-foundation/nuts-siga/tracing/cmd"
	"github.com/nuts-foundation/nuts-siga/xades"
	xadesCmd "github.com/nuts-foundation/nuts-siga/xades/cmd"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var stdOutWriter io.Writer = os.Stdout

func createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "siga",
		Short: "Signature gateway for creating and signing ASiC-E and hashcode containers.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}
}

func createPrintConfigCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the current config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			config, err := system.Config.PrintConfig()
			if err != nil {
				return err
			}
			cmd.Println("Current system config")
			cmd.Println(config)
			return nil
		},
	}
}

func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of the signature gateway",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(core.BuildInfo())
		},
	}
}

func createServerCommand(system *core.System) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the signature gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := system.Load(cmd.Flags()); err != nil {
				return err
			}
			return startServer(cmd.Context(), system)
		},
	}
}

// startServer configures and starts all engines, and shuts them down when the context is cancelled.
func startServer(ctx context.Context, system *core.System) error {
	logrus.Infof("Starting signature gateway (version: %s)", core.Version())
	if err := system.Configure(); err != nil {
		return err
	}

	var router core.EchoRouter
	system.VisitEngines(func(engine core.Engine) {
		if httpServer, ok := engine.(*httpEngine.Engine); ok {
			router = httpServer.Router()
		}
	})
	for _, r := range system.Routers {
		r.Routes(router)
	}

	if err := system.Start(); err != nil {
		return err
	}
	logrus.Info("Signature gateway started")

	<-ctx.Done()
	logrus.Info("Shutting down...")
	if err := system.Shutdown(); err != nil {
		logrus.WithError(err).Error("Error shutting down system")
		return err
	}
	logrus.Info("Shutdown complete. Goodbye!")
	return nil
}

// CreateCommand creates the command with all subcommands to run the system.
func CreateCommand(system *core.System) *cobra.Command {
	command := createRootCommand()
	command.SetOut(stdOutWriter)
	addSubCommands(system, command)
	return command
}

// CreateSystem creates the system and registers all default engines.
// The shutdownCallback is called when the HTTP server stops unexpectedly.
func CreateSystem(shutdownCallback context.CancelFunc) *core.System {
	system := core.NewSystem()

	// Create instances
	tracingInstance := tracing.New()
	storageInstance := storage.New()
	xadesInstance := xades.New()
	signingInstance := signing.New(storageInstance, xadesInstance)
	containerInstance := container.New(storageInstance)
	reprocessingInstance := reprocessing.New(storageInstance, signingInstance)
	statusEngine := status.NewStatusEngine(system)
	metricsEngine := core.NewMetricsEngine()
	httpServerInstance := httpEngine.New(shutdownCallback)

	// Register HTTP routes
	system.RegisterRoutes(statusEngine.(core.Routable))
	system.RegisterRoutes(metricsEngine.(core.Routable))
	system.RegisterRoutes(&containerAPI.Wrapper{Service: containerInstance})
	system.RegisterRoutes(&signingAPI.Wrapper{Service: signingInstance})

	// Register engines
	// Tracing MUST be registered first, so outbound HTTP clients are instrumented and logs are exported until shutdown.
	system.RegisterEngine(tracingInstance)
	// without dependencies
	system.RegisterEngine(statusEngine)
	system.RegisterEngine(metricsEngine)
	system.RegisterEngine(storageInstance)
	system.RegisterEngine(xadesInstance)
	// the rest
	system.RegisterEngine(signingInstance)
	system.RegisterEngine(containerInstance)
	system.RegisterEngine(reprocessingInstance)
	// HTTP engine MUST be registered last, because when started it dispatches HTTP calls to the registered routes.
	// Registering it last also makes sure the HTTP server is stopped first on shutdown.
	system.RegisterEngine(httpServerInstance)
	return system
}

// Execute registers all engines into the system and executes the root command.
func Execute(ctx context.Context, system *core.System) error {
	command := CreateCommand(system)
	command.SetOut(stdOutWriter)
	return command.ExecuteContext(ctx)
}

func addSubCommands(system *core.System, root *cobra.Command) {
	serverCommand := createServerCommand(system)
	serverCommand.Flags().AddFlagSet(serverConfigFlags())
	root.AddCommand(serverCommand)

	printConfigCommand := createPrintConfigCommand(system)
	printConfigCommand.Flags().AddFlagSet(serverConfigFlags())
	root.AddCommand(printConfigCommand)

	root.AddCommand(createVersionCommand())
}

// serverConfigFlags returns the flags of the server and all engines.
func serverConfigFlags() *pflag.FlagSet {
	set := pflag.NewFlagSet("server", pflag.ContinueOnError)
	set.AddFlagSet(core.FlagSet())
	set.AddFlagSet(tracingCmd.FlagSet())
	set.AddFlagSet(storageCmd.FlagSet())
	set.AddFlagSet(xadesCmd.FlagSet())
	set.AddFlagSet(signingCmd.FlagSet())
	set.AddFlagSet(reprocessingCmd.FlagSet())
	set.AddFlagSet(httpCmd.FlagSet())
	return set
}
