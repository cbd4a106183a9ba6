package cli

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/chartpool/chartpool/engine/datasource"
	"github.com/chartpool/chartpool/engine/schema"
)

// FileConfig is the YAML shape accepted by `chartpool validate`. It declares
// the schema graph, the query sources over it, and the series input to run
// through the cleaners.
type FileConfig struct {
	Models      []ModelConfig           `yaml:"models"       validate:"required,min=1,dive"`
	Sources     map[string]SourceConfig `yaml:"sources"      validate:"required,min=1,dive"`
	Series      []GroupConfig           `yaml:"series"       validate:"omitempty,dive"`
	PivotSeries []GroupConfig           `yaml:"pivot_series" validate:"omitempty,dive"`
}

type ModelConfig struct {
	Name   string        `yaml:"name"   validate:"required"`
	Fields []FieldConfig `yaml:"fields" validate:"required,min=1,dive"`
}

type FieldConfig struct {
	Name        string `yaml:"name" validate:"required"`
	AttName     string `yaml:"att_name"`
	VerboseName string `yaml:"verbose_name"`
	// Related names another declared model this field points at.
	Related string `yaml:"related"`
	// Reverse marks the relation as implied by the other model.
	Reverse bool `yaml:"reverse"`
}

type SourceConfig struct {
	Model       string   `yaml:"model" validate:"required"`
	Annotations []string `yaml:"annotations"`
	Extras      []string `yaml:"extras"`
}

type GroupConfig struct {
	Options map[string]any `yaml:"options" validate:"required"`
	Terms   any            `yaml:"terms"   validate:"required"`
}

// LoadConfig reads and validates a chart configuration file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// BuildSources materializes the declared models into a schema graph and
// wraps each source declaration in an in-memory query set.
func BuildSources(cfg *FileConfig) (map[string]datasource.QuerySet, error) {
	models := make(map[string]*schema.Model, len(cfg.Models))
	for _, mc := range cfg.Models {
		if _, dup := models[mc.Name]; dup {
			return nil, fmt.Errorf("model %q is declared twice", mc.Name)
		}
		models[mc.Name] = schema.NewModel(mc.Name)
	}
	// Fields are attached in a second pass so relations can point at any
	// declared model regardless of order.
	for _, mc := range cfg.Models {
		model := models[mc.Name]
		for _, fc := range mc.Fields {
			field := &schema.Field{
				Name:        fc.Name,
				AttName:     fc.AttName,
				VerboseName: fc.VerboseName,
				Direct:      !fc.Reverse,
			}
			if fc.Related != "" {
				related, ok := models[fc.Related]
				if !ok {
					return nil, fmt.Errorf("field %s.%s references undeclared model %q",
						mc.Name, fc.Name, fc.Related)
				}
				field.Related = related
			}
			model.AddField(field)
		}
	}

	sources := make(map[string]datasource.QuerySet, len(cfg.Sources))
	for name, sc := range cfg.Sources {
		model, ok := models[sc.Model]
		if !ok {
			return nil, fmt.Errorf("source %q references undeclared model %q", name, sc.Model)
		}
		sources[name] = datasource.NewTableSource(model).WithQuery(sc.Annotations, sc.Extras)
	}
	return sources, nil
}

// resolveGroups converts the YAML series groups into the loose input the
// cleaners accept: source names become query sets, textual aggregate
// expressions become aggregate values.
func resolveGroups(groups []GroupConfig, sources map[string]datasource.QuerySet, pivot bool) ([]any, error) {
	resolved := make([]any, 0, len(groups))
	for _, gc := range groups {
		options := make(map[string]any, len(gc.Options))
		for key, value := range gc.Options {
			rv, err := resolveOptionValue(key, value, sources)
			if err != nil {
				return nil, err
			}
			options[key] = rv
		}
		terms := gc.Terms
		if pivot {
			resolvedTerms, err := resolvePivotTerms(terms, sources)
			if err != nil {
				return nil, err
			}
			terms = resolvedTerms
		}
		resolved = append(resolved, map[string]any{"options": options, "terms": terms})
	}
	return resolved, nil
}

func resolveOptionValue(key string, value any, sources map[string]datasource.QuerySet) (any, error) {
	switch key {
	case "source":
		name, ok := value.(string)
		if !ok {
			return value, nil
		}
		qs, ok := sources[name]
		if !ok {
			return nil, fmt.Errorf("source %q is not declared", name)
		}
		return qs, nil
	case "func":
		text, ok := value.(string)
		if !ok {
			return value, nil
		}
		return datasource.ParseAggregate(text)
	default:
		return value, nil
	}
}

func resolvePivotTerms(terms any, sources map[string]datasource.QuerySet) (any, error) {
	termMap, ok := terms.(map[string]any)
	if !ok {
		return terms, nil
	}
	resolved := make(map[string]any, len(termMap))
	for name, value := range termMap {
		switch v := value.(type) {
		case string:
			agg, err := datasource.ParseAggregate(v)
			if err != nil {
				return nil, err
			}
			resolved[name] = agg
		case map[string]any:
			record := make(map[string]any, len(v))
			for key, item := range v {
				rv, err := resolveOptionValue(key, item, sources)
				if err != nil {
					return nil, err
				}
				record[key] = rv
			}
			resolved[name] = record
		default:
			resolved[name] = value
		}
	}
	return resolved, nil
}
