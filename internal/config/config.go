package config

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"os"
	"strconv"
	"strings"
)

const (
	StoreMemory = "memory"
	StoreGRPC   = "grpc"

	requestKeyPrefix = "request."
)

type Config struct {
	// Store selects the row store export reads from: memory (the snapshot) or grpc.
	Store        string
	SnapshotPath string
	ShardCount   int

	ServerAddress string
	ServerPort    int

	Table    string
	StartKey string
	EndKey   string
	// Requests maps a table name to its request text.
	Requests map[string]string

	Debug bool
}

// NewConfig reads the litetable.conf at path, or the default one when path is empty.
func NewConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = litetable.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get LiteTable directory: %w", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{
		Store:    StoreMemory,
		Requests: make(map[string]string),
	}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "store":
			config.Store = value
		case "snapshot_path":
			config.SnapshotPath = value
		case "shard_count":
			config.ShardCount, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid shard count value: %w", err)
			}
		case "server_address":
			config.ServerAddress = value
		case "server_port":
			config.ServerPort, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid server port value: %w", err)
			}
		case "table":
			config.Table = value
		case "start_key":
			config.StartKey = value
		case "end_key":
			config.EndKey = value
		case "debug":
			config.Debug = value == "true"
		default:
			// request.<table> = family=info; family=jobs page_size=10
			if table, ok := strings.CutPrefix(key, requestKeyPrefix); ok && table != "" {
				config.Requests[table] = value
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	var errGrp []error
	switch c.Store {
	case StoreMemory:
	case StoreGRPC:
		if c.ServerAddress == "" {
			errGrp = append(errGrp, fmt.Errorf("server_address is required for the grpc store"))
		}
		if c.ServerPort == 0 {
			errGrp = append(errGrp, fmt.Errorf("server_port is required for the grpc store"))
		}
	default:
		errGrp = append(errGrp, fmt.Errorf("unknown store %q", c.Store))
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		errGrp = append(errGrp, fmt.Errorf("server_port out of range: %d", c.ServerPort))
	}
	return errors.Join(errGrp...)
}

// Address is the host:port of the LiteTable server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.ServerAddress, c.ServerPort)
}

// Range is the row range [start_key, end_key).
func (c *Config) Range() store.RowRange {
	var rng store.RowRange
	if c.StartKey != "" {
		rng.Start = []byte(c.StartKey)
	}
	if c.EndKey != "" {
		rng.End = []byte(c.EndKey)
	}
	return rng
}

// Request parses the request configured for table.
func (c *Config) Request(table string) (*request.Request, error) {
	text, ok := c.Requests[table]
	if !ok {
		return nil, litetable.NewError(litetable.ErrMalformedRequest,
			"no %s%s configured", requestKeyPrefix, table)
	}
	return request.Parse(text)
}
