package main

import (
	// Standard Library Imports
	"context"
	"fmt"
	"io"
	"os"

	// External Imports
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// catalog is the seed file layout.
type catalog struct {
	Clients           []storage.Client           `yaml:"clients"`
	IdentityResources []storage.IdentityResource `yaml:"identity_resources"`
	APIResources      []storage.APIResource      `yaml:"api_resources"`
	APIScopes         []storage.APIScope         `yaml:"api_scopes"`
}

func loadCatalog(r io.Reader) (*catalog, error) {
	cat := &catalog{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cat); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return cat, nil
}

// seedCollection adds records unless the collection already holds records.
// It reports whether anything was added.
func seedCollection[T storage.Record](ctx context.Context, repo storage.Repository[T], records []T) (bool, error) {
	if len(records) == 0 {
		return false, nil
	}

	exists, err := repo.CollectionExists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	return true, repo.AddMany(ctx, records)
}

// seedCatalog seeds every kind in cat. Kinds that already hold records are
// left as they are.
func seedCatalog(ctx context.Context, log logrus.FieldLogger, b *backend, cat *catalog) error {
	report := func(collection string, count int, seeded bool, err error) error {
		if err != nil {
			return err
		}
		entry := log.WithFields(logrus.Fields{"collection": collection, "count": count})
		if seeded {
			entry.Info("seeded collection")
		} else {
			entry.Info("collection already seeded, skipping")
		}
		return nil
	}

	seeded, err := seedCollection(ctx, b.clients, cat.Clients)
	if err := report(storage.EntityClients, len(cat.Clients), seeded, err); err != nil {
		return err
	}
	seeded, err = seedCollection(ctx, b.identityResources, cat.IdentityResources)
	if err := report(storage.EntityIdentityResources, len(cat.IdentityResources), seeded, err); err != nil {
		return err
	}
	seeded, err = seedCollection(ctx, b.apiResources, cat.APIResources)
	if err := report(storage.EntityAPIResources, len(cat.APIResources), seeded, err); err != nil {
		return err
	}
	seeded, err = seedCollection(ctx, b.apiScopes, cat.APIScopes)
	return report(storage.EntityAPIScopes, len(cat.APIScopes), seeded, err)
}

func newSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed clients and the resource catalog from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			cat, err := loadCatalog(f)
			if err != nil {
				return err
			}
			return seedCatalog(cmd.Context(), a.log, a.backend, cat)
		},
	}
	cmd.Flags().StringVar(&file, "file", "catalog.yaml", "Catalog to seed from")
	return cmd
}
