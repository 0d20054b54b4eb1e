package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("top_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Food", nil)
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if category.Name != "Food" {
			t.Errorf("expected name Food, got %s", category.Name)
		}
		if category.ParentID != nil {
			t.Errorf("expected no parent, got %v", *category.ParentID)
		}
	})

	t.Run("child_of_top_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)

		child, err := svc.CreateCategory(user.ID, "Groceries", &parent.ID)
		testutil.AssertNoError(t, err)

		if child.ParentID == nil || *child.ParentID != parent.ID {
			t.Errorf("expected parent %s, got %v", parent.ID, child.ParentID)
		}
	})

	t.Run("rejects_third_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		child := testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)

		_, err := svc.CreateCategory(user.ID, "Too Deep", &child.ID)
		testutil.AssertAppError(t, err, "CATEGORY_TOO_DEEP")
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Food", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Food", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("same_name_different_user_ok", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user1.ID, "Food", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user2.ID, "Food", nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("wrong_user_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user2.ID)

		_, err := svc.CreateCategory(user1.ID, "Not Mine", &parent.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("returns_user_categories_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategory(t, db, user1.ID)
		testutil.CreateTestCategory(t, db, user1.ID)
		testutil.CreateTestCategory(t, db, user2.ID)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserCategories(user1.ID, page, false)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 categories, got %d", result.TotalItems)
		}
	})

	t.Run("top_level_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserCategories(user.ID, page, true)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 top-level category, got %d", result.TotalItems)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		for i := 0; i < 5; i++ {
			testutil.CreateTestCategory(t, db, user.ID)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 2}
		result, err := svc.GetUserCategories(user.ID, page, false)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 5 {
			t.Errorf("expected 5 total items, got %d", result.TotalItems)
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", result.TotalPages)
		}
		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page, got %d", len(result.Data))
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	t.Run("found_with_parent_preloaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		child := testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)

		found, err := svc.GetCategoryByID(user.ID, child.ID)
		testutil.AssertNoError(t, err)

		if found.Parent == nil || found.Parent.ID != parent.ID {
			t.Errorf("expected parent %s preloaded, got %+v", parent.ID, found.Parent)
		}
		if found.FullName() != parent.Name+" / "+child.Name {
			t.Errorf("unexpected full name %q", found.FullName())
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetCategoryByID(user.ID, "0190c558-6c0c-7d7e-8000-0000000000ff")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID)

		_, err := svc.GetCategoryByID(user2.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		_, err := svc.UpdateCategory(user.ID, cat.ID, "Renamed", nil)
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertNoError(t, err)
		if fetched.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %s", fetched.Name)
		}
	})

	t.Run("reparent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		newParent := testutil.CreateTestCategory(t, db, user.ID)

		_, err := svc.UpdateCategory(user.ID, cat.ID, "", &newParent.ID)
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertNoError(t, err)
		if fetched.ParentID == nil || *fetched.ParentID != newParent.ID {
			t.Errorf("expected parent %s, got %v", newParent.ID, fetched.ParentID)
		}
	})

	t.Run("reparent_from_existing_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		oldParent := testutil.CreateTestCategory(t, db, user.ID)
		child := testutil.CreateTestChildCategory(t, db, user.ID, oldParent.ID)
		newParent := testutil.CreateTestCategory(t, db, user.ID)

		updated, err := svc.UpdateCategory(user.ID, child.ID, "", &newParent.ID)
		testutil.AssertNoError(t, err)
		if updated.ParentID == nil || *updated.ParentID != newParent.ID {
			t.Errorf("expected returned parent %s, got %v", newParent.ID, updated.ParentID)
		}

		fetched, err := svc.GetCategoryByID(user.ID, child.ID)
		testutil.AssertNoError(t, err)
		if fetched.ParentID == nil || *fetched.ParentID != newParent.ID {
			t.Errorf("expected parent %s after move, got %v", newParent.ID, fetched.ParentID)
		}
		if fetched.Parent == nil || fetched.Parent.ID != newParent.ID {
			t.Errorf("expected preloaded parent %s, got %v", newParent.ID, fetched.Parent)
		}
	})

	t.Run("empty_parent_clears_to_top_level", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		child := testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)

		empty := ""
		updated, err := svc.UpdateCategory(user.ID, child.ID, "", &empty)
		testutil.AssertNoError(t, err)
		if updated.ParentID != nil {
			t.Errorf("expected parent cleared, got %v", *updated.ParentID)
		}

		fetched, err := svc.GetCategoryByID(user.ID, child.ID)
		testutil.AssertNoError(t, err)
		if fetched.ParentID != nil {
			t.Errorf("expected top-level category after clearing, got parent %v", *fetched.ParentID)
		}
	})

	t.Run("nil_parent_leaves_parent_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		child := testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)

		_, err := svc.UpdateCategory(user.ID, child.ID, "Renamed Child", nil)
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetCategoryByID(user.ID, child.ID)
		testutil.AssertNoError(t, err)
		if fetched.Name != "Renamed Child" {
			t.Errorf("expected name Renamed Child, got %s", fetched.Name)
		}
		if fetched.ParentID == nil || *fetched.ParentID != parent.ID {
			t.Errorf("expected parent %s untouched, got %v", parent.ID, fetched.ParentID)
		}
	})

	t.Run("self_parent_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		_, err := svc.UpdateCategory(user.ID, cat.ID, "", &cat.ID)
		testutil.AssertAppError(t, err, "SELF_PARENT_CATEGORY")
	})

	t.Run("parent_with_children_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)
		other := testutil.CreateTestCategory(t, db, user.ID)

		// parent has children, so nesting it under other would create depth 3
		_, err := svc.UpdateCategory(user.ID, parent.ID, "", &other.ID)
		testutil.AssertAppError(t, err, "CATEGORY_TOO_DEEP")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateCategory(user.ID, "0190c558-6c0c-7d7e-8000-0000000000ff", "Nope", nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		err := svc.DeleteCategory(user.ID, cat.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("with_children_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		parent := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestChildCategory(t, db, user.ID, parent.ID)

		err := svc.DeleteCategory(user.ID, parent.ID)
		testutil.AssertAppError(t, err, "CATEGORY_HAS_CHILDREN")
	})

	t.Run("transactions_keep_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		txSvc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)
		tx := testutil.CreateTestCategorizedTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, 1000, time.Now())

		err := svc.DeleteCategory(user.ID, cat.ID)
		testutil.AssertNoError(t, err)

		fetched, err := txSvc.GetTransactionByID(user.ID, tx.ID)
		testutil.AssertNoError(t, err)
		if fetched.CategoryID == nil || *fetched.CategoryID != cat.ID {
			t.Errorf("expected transaction to keep category reference, got %v", fetched.CategoryID)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID)

		err := svc.DeleteCategory(user2.ID, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
