package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. VICORE_TABSTOP.
const EnvPrefix = "VICORE_"

// Load builds options from defaults, the TOML file at path (skipped when
// path is empty or the file does not exist) and the process environment.
func Load(path string) (Options, error) {
	o := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Options{}, fmt.Errorf("reading options file %s: %w", path, err)
		default:
			if o, err = parse(path, data, o); err != nil {
				return Options{}, err
			}
		}
	}
	o, err := ApplyEnv(o, os.Environ())
	if err != nil {
		return Options{}, err
	}
	return o, o.Validate()
}

// LoadReader decodes TOML from r on top of the defaults.
func LoadReader(r io.Reader) (Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Options{}, fmt.Errorf("reading options: %w", err)
	}
	o, err := parse("<reader>", data, Defaults())
	if err != nil {
		return Options{}, err
	}
	return o, o.Validate()
}

// parse decodes data over base. Keys absent from the file keep their
// base values.
func parse(source string, data []byte, base Options) (Options, error) {
	o := base
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return Options{}, pe
	}
	return o, nil
}

// ApplyEnv overrides o with VICORE_<NAME> entries from environ, where NAME
// is an option name in upper case.
func ApplyEnv(o Options, environ []string) (Options, error) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if err := setOption(&o, strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), value); err != nil {
			return Options{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	return o, nil
}

func setOption(o *Options, name, value string) error {
	switch name {
	case "tabstop", "ts":
		return setInt(&o.Tabstop, value)
	case "shiftwidth", "sw":
		return setInt(&o.Shiftwidth, value)
	case "textwidth", "tw":
		return setInt(&o.Textwidth, value)
	case "expandtab", "et":
		return setBool(&o.Expandtab, value)
	case "ignorecase", "ic":
		return setBool(&o.Ignorecase, value)
	case "smartcase", "scs":
		return setBool(&o.Smartcase, value)
	case "wrapscan", "ws":
		return setBool(&o.Wrapscan, value)
	case "virtualedit", "ve":
		o.Virtualedit = value
		return nil
	}
	// Unknown VICORE_ variables belong to other components.
	return nil
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidOption, value)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off", "":
		*dst = false
	default:
		return fmt.Errorf("%w: %q is not a boolean", ErrInvalidOption, value)
	}
	return nil
}
