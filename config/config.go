package config

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/midbel/gridcalc/format"
)

var (
	ErrInvalid = errors.New("invalid value")
	ErrUnknown = errors.New("unknown property")
	ErrMissing = errors.New("missing property")
	ErrFormat  = errors.New("invalid line format")
)

const EnvPrefix = "GRIDCALC"

const (
	KeyInitialRows  = "initialTableRows"
	KeyInitialCols  = "initialTableCols"
	KeyMaxRows      = "maxTableRows"
	KeyMaxCols      = "maxTableCols"
	KeyAutoFit      = "autoFit"
	KeyVisible      = "visibleCellSymbols"
	KeyAlignment    = "initialAlignment"
	KeyClearConsole = "clearConsoleAfterCommand"
	KeyLogLevel     = "logLevel"
	KeyLogFile      = "logFile"
	KeyLogFormat    = "logFormat"
	KeyMaxDepth     = "maxEvalDepth"
	KeyNumberFormat = "numberFormat"
)

// required are the properties every configuration file must define.
var required = []string{
	KeyInitialRows,
	KeyInitialCols,
	KeyMaxRows,
	KeyMaxCols,
	KeyAutoFit,
	KeyVisible,
	KeyAlignment,
	KeyClearConsole,
}

var optional = []string{
	KeyLogLevel,
	KeyLogFile,
	KeyLogFormat,
	KeyMaxDepth,
	KeyNumberFormat,
}

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func ParseAlignment(str string) (Alignment, error) {
	switch a := Alignment(str); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	default:
		return "", fmt.Errorf("%s: %w", str, ErrInvalid)
	}
}

type Config struct {
	InitialRows        int
	InitialCols        int
	MaxRows            int
	MaxCols            int
	AutoFit            bool
	VisibleCellSymbols int
	Alignment          Alignment
	ClearConsole       bool

	LogLevel     string
	LogFile      string
	LogFormat    string
	MaxEvalDepth int
	// NumberFormat is a pattern like #,###.## for the numbers computed by
	// formulas. Empty keeps the default rendering.
	NumberFormat string

	// File is the path the configuration was loaded from, if any.
	File string
}

func Default() Config {
	return Config{
		InitialRows:        3,
		InitialCols:        3,
		MaxRows:            100,
		MaxCols:            26,
		AutoFit:            true,
		VisibleCellSymbols: 10,
		Alignment:          AlignLeft,
		ClearConsole:       false,
		LogLevel:           "warn",
		LogFormat:          "text",
		MaxEvalDepth:       256,
	}
}

// Load reads the configuration from file. Files with a yaml, yml, toml or
// json extension are decoded by viper; any other file uses the name:value
// property format, one property per line. Environment variables prefixed by
// GRIDCALC_ override the values of the file. An empty file name gives the
// defaults with the environment overrides applied.
func Load(file string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := Default()
	setDefaults(v, def)

	if file == "" {
		return decode(v, def)
	}
	if err := read(v, file); err != nil {
		return def, err
	}
	if err := checkKeys(v); err != nil {
		return def, err
	}
	cfg, err := decode(v, def)
	if err != nil {
		return def, err
	}
	cfg.File = file
	return cfg, nil
}

func read(v *viper.Viper, file string) error {
	switch ext := strings.TrimPrefix(filepath.Ext(file), "."); ext {
	case "yaml", "yml", "toml", "json":
		v.SetConfigFile(file)
		v.SetConfigType(ext)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		return nil
	default:
		props, err := readProperties(file)
		if err != nil {
			return err
		}
		return v.MergeConfigMap(props)
	}
}

// readProperties reads lines of the form name:value. Empty lines are
// skipped; the name ends at the first colon.
func readProperties(file string) (map[string]any, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var (
		props = make(map[string]any)
		scan  = bufio.NewScanner(r)
	)
	for scan.Scan() {
		line := strings.TrimRight(scan.Text(), "\r")
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%s: missing ':': %w", line, ErrFormat)
		}
		name = strings.TrimSpace(name)
		if !known(name) {
			return nil, fmt.Errorf("%s: %w", name, ErrUnknown)
		}
		props[name] = strings.TrimSpace(value)
	}
	return props, scan.Err()
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault(KeyInitialRows, cfg.InitialRows)
	v.SetDefault(KeyInitialCols, cfg.InitialCols)
	v.SetDefault(KeyMaxRows, cfg.MaxRows)
	v.SetDefault(KeyMaxCols, cfg.MaxCols)
	v.SetDefault(KeyAutoFit, cfg.AutoFit)
	v.SetDefault(KeyVisible, cfg.VisibleCellSymbols)
	v.SetDefault(KeyAlignment, string(cfg.Alignment))
	v.SetDefault(KeyClearConsole, cfg.ClearConsole)
	v.SetDefault(KeyLogLevel, cfg.LogLevel)
	v.SetDefault(KeyLogFile, cfg.LogFile)
	v.SetDefault(KeyLogFormat, cfg.LogFormat)
	v.SetDefault(KeyMaxDepth, cfg.MaxEvalDepth)
	v.SetDefault(KeyNumberFormat, cfg.NumberFormat)
}

// checkKeys reports unknown properties and every required property the
// file does not set.
func checkKeys(v *viper.Viper) error {
	var errs []error
	for _, k := range v.AllKeys() {
		if !known(k) {
			errs = append(errs, fmt.Errorf("%s: %w", k, ErrUnknown))
		}
	}
	var missing []string
	for _, k := range required {
		if !v.InConfig(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissing))
	}
	return errors.Join(errs...)
}

func known(name string) bool {
	match := func(k string) bool {
		return strings.EqualFold(k, name)
	}
	return slices.ContainsFunc(required, match) || slices.ContainsFunc(optional, match)
}

func decode(v *viper.Viper, def Config) (Config, error) {
	var (
		cfg  = def
		errs []error
		err  error
	)
	if cfg.InitialRows, err = positive(v, KeyInitialRows); err != nil {
		errs = append(errs, err)
	}
	if cfg.InitialCols, err = positive(v, KeyInitialCols); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxRows, err = positive(v, KeyMaxRows); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxCols, err = positive(v, KeyMaxCols); err != nil {
		errs = append(errs, err)
	}
	if cfg.AutoFit, err = boolean(v, KeyAutoFit); err != nil {
		errs = append(errs, err)
	}
	if cfg.VisibleCellSymbols, err = positive(v, KeyVisible); err != nil {
		errs = append(errs, err)
	}
	if cfg.Alignment, err = ParseAlignment(v.GetString(KeyAlignment)); err != nil {
		errs = append(errs, invalid(KeyAlignment, v.Get(KeyAlignment)))
	}
	if cfg.ClearConsole, err = boolean(v, KeyClearConsole); err != nil {
		errs = append(errs, err)
	}
	if cfg.MaxEvalDepth, err = positive(v, KeyMaxDepth); err != nil {
		errs = append(errs, err)
	}
	cfg.LogFile = v.GetString(KeyLogFile)
	cfg.LogFormat = v.GetString(KeyLogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, invalid(KeyLogFormat, cfg.LogFormat))
	}
	cfg.LogLevel = v.GetString(KeyLogLevel)
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, invalid(KeyLogLevel, cfg.LogLevel))
	}
	cfg.NumberFormat = v.GetString(KeyNumberFormat)
	if _, err := cfg.Formatter(); err != nil {
		errs = append(errs, invalid(KeyNumberFormat, cfg.NumberFormat))
	}
	if len(errs) > 0 {
		return def, errors.Join(errs...)
	}
	return cfg, cfg.Validate()
}

// Validate checks the relations between the properties.
func (c Config) Validate() error {
	var errs []error
	if c.InitialRows > c.MaxRows {
		errs = append(errs, fmt.Errorf("%s (%d) greater than %s (%d): %w", KeyInitialRows, c.InitialRows, KeyMaxRows, c.MaxRows, ErrInvalid))
	}
	if c.InitialCols > c.MaxCols {
		errs = append(errs, fmt.Errorf("%s (%d) greater than %s (%d): %w", KeyInitialCols, c.InitialCols, KeyMaxCols, c.MaxCols, ErrInvalid))
	}
	return errors.Join(errs...)
}

// Formatter gives the formatter of the values computed by formulas.
func (c Config) Formatter() (format.Formatter, error) {
	vf := format.FormatValue()
	if c.NumberFormat == "" {
		return vf, nil
	}
	if err := vf.Number(c.NumberFormat); err != nil {
		return nil, err
	}
	return vf, nil
}

// Properties gives the configuration in the name:value property format.
// Optional properties without a value are left out.
func (c Config) Properties() []string {
	props := []string{
		fmt.Sprintf("%s:%d", KeyInitialRows, c.InitialRows),
		fmt.Sprintf("%s:%d", KeyInitialCols, c.InitialCols),
		fmt.Sprintf("%s:%d", KeyMaxRows, c.MaxRows),
		fmt.Sprintf("%s:%d", KeyMaxCols, c.MaxCols),
		fmt.Sprintf("%s:%t", KeyAutoFit, c.AutoFit),
		fmt.Sprintf("%s:%d", KeyVisible, c.VisibleCellSymbols),
		fmt.Sprintf("%s:%s", KeyAlignment, c.Alignment),
		fmt.Sprintf("%s:%t", KeyClearConsole, c.ClearConsole),
	}
	for k, v := range map[string]string{
		KeyLogLevel:     c.LogLevel,
		KeyLogFile:      c.LogFile,
		KeyLogFormat:    c.LogFormat,
		KeyNumberFormat: c.NumberFormat,
	} {
		if v != "" {
			props = append(props, k+":"+v)
		}
	}
	props = append(props, fmt.Sprintf("%s:%d", KeyMaxDepth, c.MaxEvalDepth))
	slices.Sort(props[len(required):])
	return props
}

func invalid(key string, value any) error {
	return fmt.Errorf("%s:%v - %w", key, value, ErrInvalid)
}

func positive(v *viper.Viper, key string) (int, error) {
	var n int64
	switch x := v.Get(key).(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt32 {
			return 0, invalid(key, x)
		}
		n = int64(x)
	case string:
		if x == "" || strings.Trim(x, "0123456789") != "" {
			return 0, invalid(key, x)
		}
		i, err := strconv.ParseInt(x, 10, 32)
		if err != nil {
			return 0, invalid(key, x)
		}
		n = i
	default:
		return 0, invalid(key, x)
	}
	if n <= 0 || n > math.MaxInt32 {
		return 0, invalid(key, n)
	}
	return int(n), nil
}

func boolean(v *viper.Viper, key string) (bool, error) {
	switch x := v.Get(key).(type) {
	case bool:
		return x, nil
	case string:
		switch x {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, invalid(key, x)
	default:
		return false, invalid(key, x)
	}
}
