// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"testing"

	"github.com/zr6b/voteapp/db"
	"github.com/zr6b/voteapp/testutil"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Expected second CreateSchema to succeed, got %v", err)
	}
}

func TestCreateSchema_UnknownDialect(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn, "mysql"); err == nil {
		t.Error("Expected error for unknown dialect")
	}
}

func TestSeed_KeepsExistingRows(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()
	regions := []string{"臺北市", "高雄市"}

	if err := db.Seed(ctx, conn, regions, "2025-03-01"); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if _, err := conn.Exec(`UPDATE region_tally SET total_votes = 5, today_votes = 2 WHERE region = $1`, "臺北市"); err != nil {
		t.Fatalf("update tally: %v", err)
	}

	if err := db.Seed(ctx, conn, regions, "2025-03-09"); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	var total, today int64
	err := conn.QueryRow(`SELECT total_votes, today_votes FROM region_tally WHERE region = $1`, "臺北市").Scan(&total, &today)
	if err != nil {
		t.Fatalf("read tally: %v", err)
	}
	if total != 5 || today != 2 {
		t.Errorf("Expected 5/2 preserved, got %d/%d", total, today)
	}

	var resetDate string
	err = conn.QueryRow(`SELECT last_reset_date FROM rollover_meta WHERE id = $1`, db.MetaID).Scan(&resetDate)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if resetDate != "2025-03-01" {
		t.Errorf("Expected original reset date kept, got %s", resetDate)
	}

	if n := testutil.CountRows(t, conn, "region_tally"); n != 2 {
		t.Errorf("Expected 2 regions, got %d", n)
	}
}

func TestSchema_TallyConstraints(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	if err := db.Seed(ctx, conn, []string{"臺北市"}, "2025-03-01"); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	testCases := []struct {
		name  string
		query string
	}{
		{"negative total", `UPDATE region_tally SET total_votes = -1`},
		{"negative today", `UPDATE region_tally SET today_votes = -1`},
		{"today above total", `UPDATE region_tally SET today_votes = 1`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := conn.Exec(tc.query); err == nil {
				t.Error("Expected constraint violation")
			}
		})
	}
}
