package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Settings namespaces used across the app.
const (
	NamespaceConfig  = "config"
	NamespaceProfile = "profile"
)

type kvStore struct {
	db querier
}

func (k *kvStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	query, args := builder.Select("value").
		From(entsql.Table(tableSettings)).
		Where(entsql.And(entsql.EQ("namespace", namespace), entsql.EQ("key", key))).
		Query()

	var value string
	err := k.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s.%s: %w", namespace, key, err)
	}
	return value, true, nil
}

func (k *kvStore) Set(ctx context.Context, namespace, key, value string) error {
	query, args := builder.Insert(tableSettings).
		Columns("namespace", "key", "value", "updated_at").
		Values(namespace, key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("namespace", "key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := k.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set setting %s.%s: %w", namespace, key, err)
	}
	return nil
}

func (k *kvStore) Delete(ctx context.Context, namespace, key string) error {
	query, args := builder.Delete(tableSettings).
		Where(entsql.And(entsql.EQ("namespace", namespace), entsql.EQ("key", key))).
		Query()
	if _, err := k.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete setting %s.%s: %w", namespace, key, err)
	}
	return nil
}

func (k *kvStore) List(ctx context.Context, namespace string) (map[string]string, error) {
	query, args := builder.Select("key", "value").
		From(entsql.Table(tableSettings)).
		Where(entsql.EQ("namespace", namespace)).
		OrderBy("key").
		Query()

	rows, err := k.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list settings %s: %w", namespace, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}
