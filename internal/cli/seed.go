package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/AbhishekPandey12/foodorderingapp/internal/database"
	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"github.com/AbhishekPandey12/foodorderingapp/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type itemSeed struct {
	Items []itemSeedEntry `yaml:"items"`
}

type itemSeedEntry struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
	Type  string `yaml:"type"`
	Image string `yaml:"image"`
}

var seedItemsCmd = &cobra.Command{
	Use:   "seed-items <file>",
	Short: "Load items from a YAML file",
	Long: `Insert or update the items listed in a YAML file. Items are matched on id,
so a file can be loaded repeatedly. Entries without an id get a fresh one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()

		items, err := parseItemSeed(f)
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		repo := store.New(db).Items
		for _, item := range items {
			if err := repo.Upsert(cmd.Context(), item); err != nil {
				return fmt.Errorf("failed to save item %q: %w", item.ItemName, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s %s\n", item.UUID, item.ItemName)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d items\n", len(items))
		return nil
	},
}

// parseItemSeed decodes and checks every entry before anything is written
func parseItemSeed(r io.Reader) ([]*models.Item, error) {
	var seed itemSeed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	items := make([]*models.Item, 0, len(seed.Items))
	for i, e := range seed.Items {
		if e.Name == "" {
			return nil, fmt.Errorf("item %d: name is required", i+1)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("item %d (%s): price must not be negative", i+1, e.Name)
		}
		itemType := models.ItemType(e.Type)
		if !itemType.Valid() {
			return nil, fmt.Errorf("item %d (%s): unknown type %q", i+1, e.Name, e.Type)
		}

		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, &models.Item{
			UUID:     id,
			ItemName: e.Name,
			Price:    e.Price,
			Type:     itemType,
			ImageKey: e.Image,
		})
	}
	return items, nil
}
