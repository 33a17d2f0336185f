// Package relational stores documents in SQL databases, one table per
// collection named <database id>_<collection id>, with the document fields
// kept as a JSON column.
package relational

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/menuseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/menuseed/internal/types"
	"github.com/Masterminds/squirrel"
)

type Adapter struct {
	db      *sql.DB
	qb      squirrel.StatementBuilderType
	dialect dialect

	mu     sync.Mutex
	tables map[string]bool
}

func New(provider string) (*Adapter, error) {
	d, ok := dialects[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported SQL provider: %s", provider)
	}
	return &Adapter{
		qb:      squirrel.StatementBuilder.PlaceholderFormat(d.placeholder),
		dialect: d,
		tables:  make(map[string]bool),
	}, nil
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := a.dialect.dsn(url)
	if err != nil {
		return err
	}

	db, err := sql.Open(a.dialect.driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", a.dialect.name, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to %s: %w", a.dialect.name, err)
	}

	a.db = db
	return nil
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	if a.db == nil {
		return fmt.Errorf("database not connected")
	}
	return a.db.PingContext(ctx)
}

// table resolves the table for a collection, creating it on first use.
func (a *Adapter) table(ctx context.Context, databaseID, collectionID string) (string, error) {
	if a.db == nil {
		return "", fmt.Errorf("database not connected")
	}
	name, err := common.TableName(databaseID, collectionID)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tables[name] {
		return name, nil
	}
	if _, err := a.db.ExecContext(ctx, fmt.Sprintf(a.dialect.createTable, name)); err != nil {
		return "", fmt.Errorf("failed to create table %s: %w", name, err)
	}
	a.tables[name] = true
	return name, nil
}

func (a *Adapter) ListDocuments(ctx context.Context, databaseID, collectionID string) ([]types.Document, error) {
	table, err := a.table(ctx, databaseID, collectionID)
	if err != nil {
		return nil, err
	}

	query, args, err := a.qb.Select("id", "data").From(table).OrderBy(a.dialect.orderBy).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", collectionID, err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan document in %s: %w", collectionID, err)
		}
		fields := make(map[string]interface{})
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("document %s in %s has invalid data: %w", id, collectionID, err)
		}
		docs = append(docs, types.Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

func (a *Adapter) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, fields map[string]interface{}) (*types.Document, error) {
	table, err := a.table(ctx, databaseID, collectionID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	query, args, err := a.qb.Insert(table).Columns("id", "data").Values(documentID, string(data)).ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create document in %s: %w", collectionID, err)
	}
	return &types.Document{ID: documentID, Fields: fields}, nil
}

func (a *Adapter) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	table, err := a.table(ctx, databaseID, collectionID)
	if err != nil {
		return err
	}

	query, args, err := a.qb.Delete(table).Where(squirrel.Eq{"id": documentID}).ToSql()
	if err != nil {
		return err
	}

	res, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("document %s not found in %s", documentID, collectionID)
	}
	return nil
}

// CountDocuments never creates the collection's table; a missing table counts as empty.
func (a *Adapter) CountDocuments(ctx context.Context, databaseID, collectionID string) (int64, error) {
	if a.db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	table, err := common.TableName(databaseID, collectionID)
	if err != nil {
		return 0, err
	}

	exists, err := a.tableExists(ctx, table)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	query, args, err := a.qb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := a.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents in %s: %w", collectionID, err)
	}
	return count, nil
}

func (a *Adapter) tableExists(ctx context.Context, table string) (bool, error) {
	a.mu.Lock()
	known := a.tables[table]
	a.mu.Unlock()
	if known {
		return true, nil
	}

	name := table
	if a.dialect.foldsCase {
		name = strings.ToLower(name)
	}

	query, args, err := a.qb.Select("COUNT(*)").
		From(a.dialect.catalogTable).
		Where(a.dialect.catalogFilter).
		Where(squirrel.Eq{a.dialect.nameColumn: name}).
		ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := a.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return n > 0, nil
}
