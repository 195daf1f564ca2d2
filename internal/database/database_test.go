package database

import (
	"context"
	"log"
	"testing"
	"time"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "PeopleDesk-backend/internal/model"
)

var testDB *DBinstanceStruct

func TestMain(tm *testing.M) {
	teardown, db, err := GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	testDB = db

	tm.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil && teardown(ctx) != nil {
		log.Fatalf("could not teardown postgres container: %v", err)
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestMigrationSeededCategories(t *testing.T) {
	var count int64
	if err := testDB.Model(&m.JobCategory{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count < 2 {
		t.Fatalf("expected at least 2 seeded categories, got %d", count)
	}
}

func TestSeededEmployees(t *testing.T) {
	if TestEmployee1.ID == 0 || TestEmployee2.ID == 0 {
		t.Fatal("expected seeded employees to be loaded")
	}
	if TestEmployee1.Salary != "52000" {
		t.Fatalf("expected salary to survive the seed as text, got %q", TestEmployee1.Salary)
	}
	var loaded m.Employee
	if err := testDB.First(&loaded, TestEmployee1.ID).Error; err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if loaded.Salary != TestEmployee1.Salary {
		t.Fatalf("expected stored salary %q, got %q", TestEmployee1.Salary, loaded.Salary)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := m.JobCategory{CategoryName: "Engineering"}
	// CategoryName carries no unique index, employee codes do
	emp := m.Employee{EmployeeCode: TestEmployee1.EmployeeCode}
	if err := testDB.Create(&dup).Error; err != nil {
		t.Fatalf("unexpected error creating category: %v", err)
	}
	err := testDB.Create(&emp).Error
	if err == nil {
		t.Fatal("expected duplicate employee code to fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}
