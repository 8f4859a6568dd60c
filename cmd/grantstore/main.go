// Command grantstore administers a mongo backed grant and resource store:
// seeding the resource catalog, sweeping expired grants, listing and revoking
// grants.
package main

import (
	// Standard Library Imports
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	// External Imports
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
	"github.com/p000ic/go-grantstore-mongo/manager"
	"github.com/p000ic/go-grantstore-mongo/mongo"
)

// backend is the storage the commands operate on.
type backend struct {
	grants            storage.GrantStore
	clients           storage.Repository[storage.Client]
	apiResources      storage.Repository[storage.APIResource]
	identityResources storage.Repository[storage.IdentityResource]
	apiScopes         storage.Repository[storage.APIScope]

	close func()
}

// newMongoBackend connects to mongo using MONGO_* environment variables.
func newMongoBackend(log *logrus.Logger, policy storage.RevokePolicy) (*backend, error) {
	cfg, err := mongo.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	store, err := mongo.New(cfg, log, manager.WithRevokePolicy(policy))
	if err != nil {
		return nil, err
	}

	return &backend{
		grants:            store.GrantManager,
		clients:           mongo.NewRepository[storage.Client](store.DB),
		apiResources:      mongo.NewRepository[storage.APIResource](store.DB),
		identityResources: mongo.NewRepository[storage.IdentityResource](store.DB),
		apiScopes:         mongo.NewRepository[storage.APIScope](store.DB),
		close:             store.Close,
	}, nil
}

// app carries state shared by every command.
type app struct {
	log     *logrus.Logger
	backend *backend

	envFile string
	debug   bool
	strict  bool

	// open builds the backend once flags are parsed.
	open func(log *logrus.Logger, policy storage.RevokePolicy) (*backend, error)
}

func (a *app) policy() storage.RevokePolicy {
	if a.strict {
		return storage.RevokeStrict
	}
	return storage.RevokeBestEffort
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "grantstore",
		Short:         "Administer persisted grants and the resource catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := godotenv.Load(a.envFile)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", a.envFile, err)
			}

			if a.debug {
				a.log.SetLevel(logrus.DebugLevel)
				mongo.SetDebug(true)
			}

			if a.backend == nil {
				a.backend, err = a.open(a.log, a.policy())
				if err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.backend != nil && a.backend.close != nil {
				a.backend.close()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Dotenv file to load MONGO_* settings from, if present")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newSeedCmd(a))
	root.AddCommand(newSweepCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newRevokeCmd(a))
	return root
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	a := &app{log: log, open: newMongoBackend}
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("grantstore failed")
		os.Exit(1)
	}
}
