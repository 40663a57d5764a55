package ward

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadFile reads a catalog from a YAML, JSON or TOML file. The file holds a
// top-level "wards" list:
//
//	wards:
//	  - name: 3rd Floor - PICU
//	    beds: [PICU-1, PICU-2]
func LoadFile(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var wards []Ward
	if err := v.UnmarshalKey("wards", &wards); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if len(wards) == 0 {
		return nil, fmt.Errorf("catalog %s declares no wards", path)
	}
	return NewCatalog(wards)
}

// Load returns the catalog from path, or the default layout when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	return LoadFile(path)
}
