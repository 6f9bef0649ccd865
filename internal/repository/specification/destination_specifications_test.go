package specification

import (
	"strings"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// buildSQL renders the specification against a dry-run session so the
// generated WHERE clause can be asserted without a database.
func buildSQL(t *testing.T, spec Specification) string {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	var rows []map[string]interface{}
	tx := spec.Apply(db.Table("destinations")).Find(&rows)
	if tx.Statement == nil {
		t.Fatal("no statement built")
	}
	return tx.Statement.SQL.String()
}

func TestBudgetAtMostCapsUpperBound(t *testing.T) {
	sql := buildSQL(t, BudgetAtMost{Max: 30000})
	if !strings.Contains(sql, "budget_range_max <= ") {
		t.Errorf("budget cap filters %q, want the upper bound of the range", sql)
	}
	if strings.Contains(sql, "budget_range_min") {
		t.Errorf("budget cap must not filter the lower bound: %q", sql)
	}
}

func TestBudgetWithinStraddlesAmount(t *testing.T) {
	sql := buildSQL(t, BudgetWithin{Amount: 30000})
	if !strings.Contains(sql, "budget_range_min <= ") || !strings.Contains(sql, "budget_range_max >= ") {
		t.Errorf("exact-amount filter built %q, want the range to straddle the amount", sql)
	}
}

func TestDurationAtMost(t *testing.T) {
	sql := buildSQL(t, DurationAtMost{Days: 4})
	if !strings.Contains(sql, "typical_duration_days <= ") {
		t.Errorf("duration filter built %q", sql)
	}
}
