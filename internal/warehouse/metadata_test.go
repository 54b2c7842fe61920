// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"database/sql/driver"
	"errors"
	"reflect"
	"testing"

	apperrors "snowq/cli/internal/errors"
)

func TestInspectorCatalog(t *testing.T) {
	testDriver.set(metadataQuery, fakeResult{
		columns: []string{"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE"},
		rows: [][]driver.Value{
			{"ORDERS", "ID", "NUMBER"},
			{"ORDERS", "REGION", "TEXT"},
			{"ORDERS", "PLACED_AT", "TIMESTAMP_NTZ"},
			{"CUSTOMERS", "ID", "NUMBER"},
		},
	})

	got, err := NewInspector(openTestDB(t)).Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Catalog() has %d tables, want 2", len(got))
	}
	if got["ORDERS"]["REGION"] != "TEXT" {
		t.Errorf("ORDERS.REGION = %q, want TEXT", got["ORDERS"]["REGION"])
	}
	if got["CUSTOMERS"]["ID"] != "NUMBER" {
		t.Errorf("CUSTOMERS.ID = %q, want NUMBER", got["CUSTOMERS"]["ID"])
	}
	if want := []string{"CUSTOMERS", "ORDERS"}; !reflect.DeepEqual(got.Tables(), want) {
		t.Errorf("Tables() = %v, want %v", got.Tables(), want)
	}
	if want := []string{"ID", "PLACED_AT", "REGION"}; !reflect.DeepEqual(got.ColumnsOf("ORDERS"), want) {
		t.Errorf("ColumnsOf(ORDERS) = %v, want %v", got.ColumnsOf("ORDERS"), want)
	}
}

func TestInspectorCatalogEmpty(t *testing.T) {
	testDriver.set(metadataQuery, fakeResult{
		columns: []string{"TABLE_NAME", "COLUMN_NAME", "DATA_TYPE"},
	})

	got, err := NewInspector(openTestDB(t)).Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if got == nil {
		t.Fatal("Catalog() = nil, want empty catalog")
	}
	if len(got) != 0 {
		t.Errorf("Catalog() has %d tables, want 0", len(got))
	}
}

func TestInspectorCatalogError(t *testing.T) {
	testDriver.set(metadataQuery, fakeResult{err: errors.New("warehouse offline")})

	_, err := NewInspector(openTestDB(t)).Catalog(context.Background())
	if err == nil {
		t.Fatal("Catalog() expected error")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.MetadataFailed {
		t.Errorf("error kind = %q, want %q", kind, apperrors.MetadataFailed)
	}
}
