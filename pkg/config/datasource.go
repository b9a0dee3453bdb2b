package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"

	"github.com/TechXTT/scaffold/internal/dsl"
)

// ErrNoDatasource is returned when the schema declares no datasource url.
var ErrNoDatasource = errors.New("no datasource url in schema")

// Datasource is the connection block of a Prisma schema.
type Datasource struct {
	Name     string
	Provider string
	URL      string

	// URLEnv names the variable the URL was read from, empty for literals.
	URLEnv string
}

var (
	providerRe = regexp.MustCompile(`provider\s*=\s*"([^"]+)"`)
	urlRe      = regexp.MustCompile(`url\s*=\s*(?:env\("([^"]+)"\)|"([^"]+)")`)
)

// ReadDatasource reads the datasource of the schema at schemaFile. URLs of the
// form env("VAR") are resolved after loading .env from the working directory
// and from the schema's directory; variables already set win.
func ReadDatasource(schemaFile string) (Datasource, error) {
	data, err := os.ReadFile(schemaFile)
	if err != nil {
		return Datasource{}, fmt.Errorf("read schema %s: %w", schemaFile, err)
	}
	if err := LoadDotEnv(".env", filepath.Join(filepath.Dir(schemaFile), ".env")); err != nil {
		return Datasource{}, err
	}
	return ParseDatasource(data, os.LookupEnv)
}

// LoadDotEnv loads each existing file into the process environment. Missing
// files are skipped; a file that cannot be parsed is an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseDatasource extracts the datasource block, resolving env() through lookup.
func ParseDatasource(schema []byte, lookup func(string) (string, bool)) (Datasource, error) {
	blocks := dsl.Blocks(string(schema), "datasource")
	if len(blocks) == 0 {
		return Datasource{}, ErrNoDatasource
	}
	block := []byte(blocks[0].Body)
	ds := Datasource{Name: blocks[0].Name}
	if m := providerRe.FindSubmatch(block); m != nil {
		ds.Provider = string(m[1])
	}
	m := urlRe.FindSubmatch(block)
	if m == nil {
		return ds, ErrNoDatasource
	}
	if len(m[1]) > 0 {
		ds.URLEnv = string(m[1])
		v, ok := lookup(ds.URLEnv)
		if !ok || v == "" {
			return ds, fmt.Errorf("datasource %s: environment variable %s is not set", ds.Name, ds.URLEnv)
		}
		ds.URL = v
		return ds, nil
	}
	ds.URL = string(m[2])
	return ds, nil
}
