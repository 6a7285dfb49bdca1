package configparser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadAndParseYaml loads the YAML file into the environment and then fills cfg from env tags.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadYamlFile(filepath); err != nil {
		return err
	}
	return ParseEnv(cfg)
}

// LoadDotEnv loads a .env file if it exists. Variables already present in the environment win.
func LoadDotEnv(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}
	if _, err := os.Stat(filepath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(filepath); err != nil {
		return fmt.Errorf("could not load env file: %w", err)
	}
	return nil
}

// LoadYamlFile reads a YAML file and loads its leaves into the environment.
// Nested keys are joined with "_" and upper-cased: http: {port: 8080} -> HTTP_PORT=8080.
// Values of the form ${VAR:-default} are resolved against the current environment.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	vars := make(map[string]string)
	flatten(nil, root, vars)

	for key, value := range vars {
		// Set the environment variable only if it's not already set
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

func flatten(prefix []string, node map[string]any, out map[string]string) {
	for k, v := range node {
		path := append(append([]string{}, prefix...), k)
		switch val := v.(type) {
		case map[string]any:
			flatten(path, val, out)
		case nil:
			// "key:" with no value does not represent an environment variable
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, substitute(fmt.Sprint(item)))
			}
			out[envKey(path)] = strings.Join(items, ",")
		default:
			out[envKey(path)] = substitute(fmt.Sprint(val))
		}
	}
}

func envKey(path []string) string {
	return strings.ToUpper(strings.Join(path, "_"))
}

// substitute resolves ${VAR:-default}
func substitute(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") || !strings.Contains(value, ":-") {
		return value
	}

	inner := value[2 : len(value)-1]
	parts := strings.SplitN(inner, ":-", 2)
	name := strings.TrimSpace(parts[0])
	def := strings.TrimSpace(parts[1])

	if envValue := os.Getenv(name); envValue != "" {
		return envValue
	}
	return def
}
