// Package database wraps the Neo4j driver with the graph operations the
// recommendation engine needs: parameterized reads, atomic merge writes and
// the ordered catalog ingestion.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/shivaycb/recommendations-system-for-fooddel/internal/config"
)

// Client wraps the Neo4j driver with application-specific methods.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	log      *zap.SugaredLogger
}

// NewClient creates a Neo4j client and verifies connectivity.
func NewClient(cfg config.Neo4j, log *zap.SugaredLogger) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
		func(c *neo4j.Config) {
			c.MaxConnectionPoolSize = cfg.MaxPoolSize
			c.SocketConnectTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	log.Infow("connected to Neo4j", "uri", cfg.URI, "database", cfg.Database)
	return &Client{
		driver:   driver,
		database: cfg.Database,
		log:      log,
	}, nil
}

// Close closes the Neo4j driver connection.
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// ExecuteWrite executes a write statement (MERGE, CREATE, SET). The statement
// runs atomically on the store; there is no read-then-write in application
// code.
func (c *Client) ExecuteWrite(ctx context.Context, query string, params map[string]any) error {
	_, err := neo4j.ExecuteQuery(
		ctx,
		c.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		neo4j.ExecuteQueryWithWritersRouting())
	if err != nil {
		return fmt.Errorf("failed to execute write query: %w", err)
	}
	return nil
}

// ExecuteRead executes a read statement and returns the records as key/value
// maps.
func (c *Client) ExecuteRead(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		c.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, fmt.Errorf("failed to execute read query: %w", err)
	}

	var results []map[string]any
	for _, record := range result.Records {
		recordMap := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		results = append(results, recordMap)
	}
	return results, nil
}

// Health checks the database connection.
func (c *Client) Health(ctx context.Context) error {
	_, err := neo4j.ExecuteQuery(
		ctx,
		c.driver,
		"RETURN 1",
		nil,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}
