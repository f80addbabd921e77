package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/xiehuijie/my-track-expenses/internal/models"
)

func seedTree(t *testing.T, categories *CategoryRepository, ledgerID string) (root, child *models.Category) {
	t.Helper()
	root, err := categories.Create(&models.Category{
		LedgerID: ledgerID, Name: "food", Type: models.CategoryExpense, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	child, err = categories.Create(&models.Category{
		LedgerID: ledgerID, ParentID: &root.ID, Name: "restaurants",
		Type: models.CategoryExpense, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	return root, child
}

func TestFindRoots(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, seqIDs(), nil, DeleteRestrict)

	root, child := seedTree(t, categories, "l1")
	if _, err := categories.Create(&models.Category{
		LedgerID: "l1", Name: "salary", Type: models.CategoryIncome, IsActive: true,
	}); err != nil {
		t.Fatalf("create income root: %v", err)
	}

	roots, err := categories.FindRoots("l1", nil)
	if err != nil {
		t.Fatalf("find roots: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	for _, c := range roots {
		if c.ID == child.ID {
			t.Error("child category returned as root")
		}
	}

	kind := models.CategoryExpense
	expenseRoots, err := categories.FindRoots("l1", &kind)
	if err != nil || len(expenseRoots) != 1 || expenseRoots[0].ID != root.ID {
		t.Errorf("expense roots = %+v, %v", expenseRoots, err)
	}
}

func TestFindChildren(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, seqIDs(), nil, DeleteRestrict)

	root, child := seedTree(t, categories, "l1")

	children, err := categories.FindChildren(root.ID)
	if err != nil {
		t.Fatalf("find children: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Errorf("children = %+v", children)
	}
}

func TestReparent(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, seqIDs(), nil, DeleteRestrict)

	root, child := seedTree(t, categories, "l1")
	other, err := categories.Create(&models.Category{
		LedgerID: "l1", Name: "groceries", Type: models.CategoryExpense, IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	moved, err := categories.Reparent(child.ID, &other.ID)
	if err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != other.ID {
		t.Errorf("parent = %v, want %s", moved.ParentID, other.ID)
	}

	// move to root
	moved, err = categories.Reparent(child.ID, nil)
	if err != nil {
		t.Fatalf("reparent to root: %v", err)
	}
	if moved.ParentID != nil {
		t.Errorf("parent should be nil, got %v", *moved.ParentID)
	}

	if remaining, _ := categories.FindChildren(root.ID); len(remaining) != 0 {
		t.Errorf("old parent still has children: %+v", remaining)
	}
}

func TestCategoryArchive(t *testing.T) {
	db := newTestDB(t)
	categories := NewCategoryRepository(db, seqIDs(), nil, DeleteRestrict)

	root, _ := seedTree(t, categories, "l1")
	if _, err := categories.Archive(root.ID); err != nil {
		t.Fatalf("archive: %v", err)
	}

	roots, _ := categories.FindRoots("l1", nil)
	for _, c := range roots {
		if c.ID == root.ID {
			t.Error("archived category still listed as active root")
		}
	}
	if got, _ := categories.FindByID(root.ID); got == nil {
		t.Error("archived category unreachable by id")
	}
}

func TestCategoryDeletePolicies(t *testing.T) {
	db := newTestDB(t)
	restrict := NewCategoryRepository(db, seqIDs(), nil, DeleteRestrict)
	txns := NewTransactionRepository(db, seqIDs(), nil)

	root, child := seedTree(t, restrict, "l1")
	from := "acc-1"
	txn, err := txns.Create(&models.Transaction{
		LedgerID: "l1", UserID: "u1", Type: models.TransactionExpense,
		Status: models.StatusCompleted, Amount: 100, CurrencyCode: "CNY",
		Date: time.Now(), FromAccountID: &from, CategoryID: &root.ID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if _, err := restrict.Delete(root.ID); !errors.Is(err, ErrDeleteRestricted) {
		t.Errorf("restricted delete: got %v", err)
	}

	// cascade detaches: children become roots, transactions lose the category
	cascade := NewCategoryRepository(db, seqIDs(), nil, DeleteCascade)
	removed, err := cascade.Delete(root.ID)
	if err != nil || !removed {
		t.Fatalf("cascade delete: %v, %v", removed, err)
	}

	gotChild, _ := cascade.FindByID(child.ID)
	if gotChild == nil || gotChild.ParentID != nil {
		t.Errorf("child should survive as root: %+v", gotChild)
	}
	gotTxn, _ := txns.FindByID(txn.ID)
	if gotTxn == nil || gotTxn.CategoryID != nil {
		t.Errorf("transaction should survive uncategorized: %+v", gotTxn)
	}
}
