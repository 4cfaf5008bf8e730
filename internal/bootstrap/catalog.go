package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pondkeeper/pondkeeper/internal/catalog"
	"github.com/pondkeeper/pondkeeper/internal/config"
	"github.com/pondkeeper/pondkeeper/internal/validation"
)

// SchemaPathCatalog is the JSON schema the catalog file is validated against
const SchemaPathCatalog = "configs/catalog.schema.json"

// LoadCatalog validates the catalog file against its JSON schema and loads
// it. Schema validation is skipped when the schema file is absent so ad-hoc
// catalogs still load in development.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	slog.Info(LogMsgLoadingCatalog, "path", cfg.CatalogPath)

	if _, err := os.Stat(SchemaPathCatalog); err == nil {
		v := validation.NewSchemaValidator()
		if err := v.ValidateFile(cfg.CatalogPath, SchemaPathCatalog); err != nil {
			return nil, fmt.Errorf("catalog failed schema validation: %w", err)
		}
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	slog.Info(LogMsgCatalogLoaded, "items", cat.Len())
	return cat, nil
}
